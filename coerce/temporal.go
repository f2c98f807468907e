package coerce

import (
	"time"
)

// Numeric temporal values below this magnitude are day counts since
// the Unix epoch; at or above it they are millisecond counts.
const dayCountThreshold = 10_000_000

var unixEpoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Exact layouts tried first, most specific to least. The ".999999999"
// fragment absorbs any fractional-second precision; truncation to
// milliseconds happens after parsing.
var naiveLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var zonedLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339Nano,
	time.RFC3339,
}

// coerceDate converts a raw DATE value to a calendar instant at UTC
// midnight. Unparseable strings yield the zero time.Time so callers
// can detect failure with IsZero instead of an error.
func coerceDate(raw any) any {
	switch v := raw.(type) {
	case time.Time:
		return midnightUTC(v)
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t.UTC()
		}
		t := parseTemporalString(v)
		if t.IsZero() {
			return t
		}
		return midnightUTC(t)
	default:
		if n, ok := toInt64(raw); ok {
			return midnightUTC(numericInstant(n))
		}
	}
	return raw
}

// coerceTimestamp converts a raw TIMESTAMP value to an absolute UTC
// instant at millisecond precision. When zoned is true an explicit
// offset or "Z" marker in string input is honored before normalizing
// to UTC; otherwise, and whenever no offset is present, the value is
// taken as UTC.
func coerceTimestamp(raw any, zoned bool) any {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC().Truncate(time.Millisecond)
	case string:
		var t time.Time
		if zoned {
			t = parseZonedString(v)
		}
		if t.IsZero() {
			t = parseTemporalString(v)
		}
		if t.IsZero() {
			return t
		}
		return t.UTC().Truncate(time.Millisecond)
	default:
		if n, ok := toInt64(raw); ok {
			return numericInstant(n)
		}
	}
	return raw
}

// coerceTimeOfDay converts a TIME value (microseconds since midnight
// or a "15:04:05" style string) to a UTC instant on the epoch day.
func coerceTimeOfDay(raw any) any {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range []string{"15:04:05.999999999", "15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC()
			}
		}
		return time.Time{}
	default:
		if n, ok := toInt64(raw); ok {
			return unixEpoch.Add(time.Duration(n) * time.Microsecond)
		}
	}
	return raw
}

// numericInstant interprets a raw count per the day/millisecond
// threshold rule.
func numericInstant(n int64) time.Time {
	if n < dayCountThreshold && n > -dayCountThreshold {
		return unixEpoch.AddDate(0, 0, int(n))
	}
	return time.UnixMilli(n).UTC()
}

// parseTemporalString tries the exact naive layouts, then the zoned
// ones as a generic fallback. Failure yields the zero time.Time.
func parseTemporalString(s string) time.Time {
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseZonedString tries offset-carrying layouts only.
func parseZonedString(s string) time.Time {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
