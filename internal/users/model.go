// Package users owns the user records, the login check, and the baseline
// seeding done at startup.
package users

import (
	"time"

	"github.com/gestaopro/gestaopro/internal/shared"
)

// User represents one account row. PasswordHash holds the raw submitted value;
// the login check is plain string equality. Known weakness kept on purpose —
// see DESIGN.md.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Payload converts the row into its transmissible field mapping.
func (u User) Payload() map[string]any {
	return map[string]any{
		"id":            u.ID,
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"created_date":  shared.FormatTimestamp(u.CreatedAt),
		"updated_date":  shared.FormatTimestamp(u.UpdatedAt),
	}
}
