package sales

// CreateForm carries the fields accepted on insert.
type CreateForm struct {
	ProductID    int64   `json:"product_id" validate:"required"`
	ProductName  string  `json:"product_name" validate:"required"`
	CustomerName *string `json:"customer_name"`
	Quantity     int     `json:"quantity" validate:"required"`
	SaleDate     string  `json:"sale_date" validate:"required"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalCost    float64 `json:"total_cost"`
	TotalProfit  float64 `json:"total_profit"`
}

// UpdateForm carries a partial overwrite; nil fields are left untouched.
type UpdateForm struct {
	ProductID    *int64   `json:"product_id"`
	ProductName  *string  `json:"product_name"`
	CustomerName *string  `json:"customer_name"`
	Quantity     *int     `json:"quantity"`
	SaleDate     *string  `json:"sale_date"`
	TotalRevenue *float64 `json:"total_revenue"`
	TotalCost    *float64 `json:"total_cost"`
	TotalProfit  *float64 `json:"total_profit"`
}
