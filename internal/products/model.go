// Package products owns the product catalog records.
package products

import (
	"time"

	"github.com/gestaopro/gestaopro/internal/shared"
)

// Product represents one catalog row. CostDetails is opaque JSON text the
// store never decomposes.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Cost        float64
	Price       float64
	Stock       int
	CostDetails *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Payload converts the row into its transmissible field mapping.
func (p Product) Payload() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"cost":         p.Cost,
		"price":        p.Price,
		"stock":        p.Stock,
		"cost_details": p.CostDetails,
		"created_date": shared.FormatTimestamp(p.CreatedAt),
		"updated_date": shared.FormatTimestamp(p.UpdatedAt),
	}
}
