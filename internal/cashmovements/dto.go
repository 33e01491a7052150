package cashmovements

// CreateForm carries the fields accepted on insert.
type CreateForm struct {
	Description string  `json:"description" validate:"required"`
	Value       float64 `json:"value"`
	Type        string  `json:"type" validate:"required,oneof=entrada saida"`
	Date        string  `json:"date" validate:"required"`
	Category    *string `json:"category"`
	Reason      *string `json:"reason"`
}

// UpdateForm carries a partial overwrite; nil fields are left untouched.
type UpdateForm struct {
	Description *string  `json:"description"`
	Value       *float64 `json:"value"`
	Type        *string  `json:"type" validate:"omitempty,oneof=entrada saida"`
	Date        *string  `json:"date"`
	Category    *string  `json:"category"`
	Reason      *string  `json:"reason"`
}
