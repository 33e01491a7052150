package products

// CreateForm carries the fields accepted on insert.
type CreateForm struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Cost        float64 `json:"cost"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CostDetails *string `json:"cost_details"`
}

// UpdateForm carries a partial overwrite; nil fields are left untouched.
type UpdateForm struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Cost        *float64 `json:"cost"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CostDetails *string  `json:"cost_details"`
}
