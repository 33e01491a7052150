// Package shared holds helpers used by every entity package.
package shared

import "time"

// TimestampLayout is the wire format for created_date/updated_date. RFC3339 with
// nanoseconds keeps the strict ordering of consecutive updates visible in the
// serialized form and round-trips through time.Parse.
const TimestampLayout = time.RFC3339Nano

// FormatTimestamp renders a timestamp for serialization. Every entity serializer
// goes through this single routine.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
