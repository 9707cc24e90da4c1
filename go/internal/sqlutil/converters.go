package sqlutil

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Helper functions for converting between untyped pgx row values and Go types.
// Rows collected with pgx.RowToMap carry driver types (int32 for SERIAL,
// time.Time for timestamptz, nil for NULL), so callers never assert directly.

// ToPgText converts a Go string pointer to pgtype.Text
func ToPgText(val *string) pgtype.Text {
	if val == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *val, Valid: true}
}

// AsInt converts an integer column value to int
func AsInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case pgtype.Int4:
		return int(v.Int32), v.Valid
	case pgtype.Int8:
		return int(v.Int64), v.Valid
	default:
		return 0, false
	}
}

// AsString converts a text column value to string
func AsString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case pgtype.Text:
		return v.String, v.Valid
	default:
		return "", false
	}
}

// AsStringPtr converts a nullable text column value to a string pointer
func AsStringPtr(val any) *string {
	s, ok := AsString(val)
	if !ok {
		return nil
	}
	return &s
}

// AsTime converts a timestamp column value to time.Time
func AsTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case pgtype.Timestamptz:
		return v.Time, v.Valid
	case pgtype.Timestamp:
		return v.Time, v.Valid
	default:
		return time.Time{}, false
	}
}
