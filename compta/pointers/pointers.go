package pointers

import "time"

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}

// Of returns a pointer to any value.
func Of[T any](v T) *T {
	return &v
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// StringOr dereferences s, returning fallback for nil or empty values.
func StringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}

	return *s
}
