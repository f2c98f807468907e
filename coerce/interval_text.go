package coerce

import (
	"strconv"
	"strings"

	"github.com/duckbridge/duckbridge-go/types"
)

// parseIntervalText decodes the engine's textual interval rendering,
// e.g. "1 year 2 months 3 days 04:05:06.789". Unit words may be
// singular or plural; a trailing clock component carries the sub-day
// microseconds.
func parseIntervalText(s string) (types.Interval, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return types.Interval{}, false
	}

	var iv types.Interval
	matched := false
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if strings.ContainsRune(tok, ':') {
			micros, ok := parseClock(tok)
			if !ok {
				return types.Interval{}, false
			}
			iv.Micros += micros
			matched = true
			continue
		}
		if i+1 >= len(fields) {
			return types.Interval{}, false
		}
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return types.Interval{}, false
		}
		unit := strings.TrimSuffix(strings.ToLower(fields[i+1]), "s")
		i++
		switch unit {
		case "year":
			iv.Months += int32(n * 12)
		case "month", "mon":
			iv.Months += int32(n)
		case "day":
			iv.Days += int32(n)
		case "hour":
			iv.Micros += n * 3_600_000_000
		case "minute":
			iv.Micros += n * 60_000_000
		case "second":
			iv.Micros += n * 1_000_000
		case "microsecond":
			iv.Micros += n
		case "millisecond":
			iv.Micros += n * 1000
		default:
			return types.Interval{}, false
		}
		matched = true
	}
	if !matched {
		return types.Interval{}, false
	}
	return iv, true
}

// parseClock decodes "[-]HH:MM:SS[.ffffff]" to microseconds.
func parseClock(s string) (int64, bool) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	hh, err1 := strconv.ParseInt(parts[0], 10, 64)
	mm, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	secPart := parts[2]
	frac := int64(0)
	if dot := strings.IndexByte(secPart, '.'); dot >= 0 {
		fracStr := secPart[dot+1:]
		secPart = secPart[:dot]
		// Right-pad to microsecond precision, truncate beyond it.
		for len(fracStr) < 6 {
			fracStr += "0"
		}
		fracStr = fracStr[:6]
		f, err := strconv.ParseInt(fracStr, 10, 64)
		if err != nil {
			return 0, false
		}
		frac = f
	}
	ss, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return 0, false
	}
	micros := hh*3_600_000_000 + mm*60_000_000 + ss*1_000_000 + frac
	if neg {
		micros = -micros
	}
	return micros, true
}
