// Package cashmovements owns the free-form cash ledger entries.
package cashmovements

import (
	"time"

	"github.com/gestaopro/gestaopro/internal/shared"
)

// Movement types accepted by the ledger.
const (
	TypeIn  = "entrada"
	TypeOut = "saida"
)

// CashMovement represents one ledger entry.
type CashMovement struct {
	ID          int64
	Description string
	Value       float64
	Type        string
	Date        string
	Category    *string
	Reason      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Payload converts the row into its transmissible field mapping.
func (m CashMovement) Payload() map[string]any {
	return map[string]any{
		"id":           m.ID,
		"description":  m.Description,
		"value":        m.Value,
		"type":         m.Type,
		"date":         m.Date,
		"category":     m.Category,
		"reason":       m.Reason,
		"created_date": shared.FormatTimestamp(m.CreatedAt),
		"updated_date": shared.FormatTimestamp(m.UpdatedAt),
	}
}
