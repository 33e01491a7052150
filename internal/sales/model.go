// Package sales owns the denormalized sale records. product_id carries no
// foreign key; deleting a product leaves its sales untouched.
package sales

import (
	"time"

	"github.com/gestaopro/gestaopro/internal/shared"
)

// Sale represents one completed sale.
type Sale struct {
	ID           int64
	ProductID    int64
	ProductName  string
	CustomerName *string
	Quantity     int
	SaleDate     string
	TotalRevenue float64
	TotalCost    float64
	TotalProfit  float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payload converts the row into its transmissible field mapping.
func (s Sale) Payload() map[string]any {
	return map[string]any{
		"id":            s.ID,
		"product_id":    s.ProductID,
		"product_name":  s.ProductName,
		"customer_name": s.CustomerName,
		"quantity":      s.Quantity,
		"sale_date":     s.SaleDate,
		"total_revenue": s.TotalRevenue,
		"total_cost":    s.TotalCost,
		"total_profit":  s.TotalProfit,
		"created_date":  shared.FormatTimestamp(s.CreatedAt),
		"updated_date":  shared.FormatTimestamp(s.UpdatedAt),
	}
}
