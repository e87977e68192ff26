package storage

import "time"

// Timestamp renders t the way created_at columns are stored: ISO-8601 in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
