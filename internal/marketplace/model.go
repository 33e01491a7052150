// Package marketplace owns the marketplace order records. The entire submitted
// payload is wrapped into one opaque order_data blob; the store enforces no
// field-level structure.
package marketplace

import (
	"time"

	"github.com/gestaopro/gestaopro/internal/shared"
)

// Order represents one marketplace order.
type Order struct {
	ID        int64
	OrderData string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payload converts the row into its transmissible field mapping.
func (o Order) Payload() map[string]any {
	return map[string]any{
		"id":           o.ID,
		"order_data":   o.OrderData,
		"created_date": shared.FormatTimestamp(o.CreatedAt),
		"updated_date": shared.FormatTimestamp(o.UpdatedAt),
	}
}

// UpdateForm carries a partial overwrite; nil leaves order_data untouched.
type UpdateForm struct {
	OrderData *string `json:"order_data"`
}
