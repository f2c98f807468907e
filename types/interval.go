package types

import (
	"fmt"
	"strings"
)

// Interval is the canonical decoded form of an INTERVAL value:
// calendar months, calendar days and a sub-day microsecond count.
// The components do not normalize into each other (a month has no
// fixed microsecond length), so they are carried separately.
type Interval struct {
	Months int32
	Days   int32
	Micros int64
}

// IsZero reports whether all components are zero.
func (i Interval) IsZero() bool {
	return i.Months == 0 && i.Days == 0 && i.Micros == 0
}

// String renders the interval in a DuckDB-flavored form, e.g.
// "1 year 2 months 3 days 00:00:01.500000".
func (i Interval) String() string {
	var parts []string
	years := i.Months / 12
	months := i.Months % 12
	if years != 0 {
		parts = append(parts, plural(int64(years), "year"))
	}
	if months != 0 {
		parts = append(parts, plural(int64(months), "month"))
	}
	if i.Days != 0 {
		parts = append(parts, plural(int64(i.Days), "day"))
	}
	if i.Micros != 0 {
		micros := i.Micros
		neg := ""
		if micros < 0 {
			neg = "-"
			micros = -micros
		}
		secs := micros / 1_000_000
		frac := micros % 1_000_000
		hh := secs / 3600
		mm := (secs % 3600) / 60
		ss := secs % 60
		if frac != 0 {
			parts = append(parts, fmt.Sprintf("%s%02d:%02d:%02d.%06d", neg, hh, mm, ss, frac))
		} else {
			parts = append(parts, fmt.Sprintf("%s%02d:%02d:%02d", neg, hh, mm, ss))
		}
	}
	if len(parts) == 0 {
		return "00:00:00"
	}
	return strings.Join(parts, " ")
}

func plural(n int64, unit string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
