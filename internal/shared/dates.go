package shared

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// DateInputLayout is the value format of an HTML date input.
const DateInputLayout = "2006-01-02"

// DisplayDateLayout renders dates the way receipts and invoices show them.
const DisplayDateLayout = "02/01/2006"

// DateLocation is the zone used for both directions of the date conversion.
// Keeping one zone for both directions means a round trip never moves the
// calendar day.
var DateLocation = time.UTC

// UnixSeconds coerces a backend timestamp (number or numeric string) to
// seconds. Millisecond values are scaled down.
func UnixSeconds(v any) (int64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v = s
	}
	secs, err := cast.ToInt64E(v)
	if err != nil {
		f, ferr := cast.ToFloat64E(v)
		if ferr != nil {
			return 0, false
		}
		secs = int64(f)
	}
	if secs <= 0 {
		return 0, false
	}
	if secs > 1e12 {
		secs /= 1000
	}
	return secs, true
}

// ParseTimestamp accepts Unix seconds or milliseconds, numeric strings, and
// RFC 3339 or YYYY-MM-DD strings.
func ParseTimestamp(v any) (time.Time, bool) {
	if secs, ok := UnixSeconds(v); ok {
		return time.Unix(secs, 0).In(DateLocation), true
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, DateInputLayout} {
		if t, err := time.ParseInLocation(layout, s, DateLocation); err == nil {
			return t.In(DateLocation), true
		}
	}
	return time.Time{}, false
}

// UnixToDateInput converts a backend timestamp to YYYY-MM-DD. Unusable input
// yields an empty string.
func UnixToDateInput(v any) string {
	t, ok := ParseTimestamp(v)
	if !ok {
		return ""
	}
	return t.Format(DateInputLayout)
}

// DateInputToUnix parses YYYY-MM-DD as midnight in DateLocation.
func DateInputToUnix(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty date")
	}
	t, err := time.ParseInLocation(DateInputLayout, s, DateLocation)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t.Unix(), nil
}

// FormatDisplayDate renders a backend timestamp as dd/mm/yyyy, or "N/A".
func FormatDisplayDate(v any) string {
	t, ok := ParseTimestamp(v)
	if !ok {
		return "N/A"
	}
	return t.Format(DisplayDateLayout)
}

// MonthRange returns the first and last calendar day of now's month as
// date-input strings.
func MonthRange(now time.Time) (string, string) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(DateInputLayout), last.Format(DateInputLayout)
}
