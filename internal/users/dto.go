package users

// CreateForm carries the fields accepted on insert.
type CreateForm struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
}

// UpdateForm carries a partial overwrite; nil fields are left untouched.
type UpdateForm struct {
	Username     *string `json:"username"`
	PasswordHash *string `json:"password_hash"`
}

// LoginRequest is the credential pair submitted to the login endpoint.
type LoginRequest struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"password_hash" validate:"required"`
}
