// Package coerce converts raw columnar field values into canonical Go
// values for their declared logical types. Coercion is a pure
// function of the raw value and its field descriptor: no state, no
// side effects, and nulls pass through every branch unchanged.
// Conversion problems never surface as errors; each branch degrades
// to a best-effort value (zero time.Time for unparseable temporals,
// the raw value for unknown shapes).
package coerce

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/duckbridge/duckbridge-go/schema"
	"github.com/duckbridge/duckbridge-go/types"
)

// MapEntry is one key/value pair of a MAP value in delivered order.
type MapEntry struct {
	Key   any
	Value any
}

// Coerce converts one raw value according to its field descriptor.
func Coerce(raw any, f schema.FieldDescriptor) any {
	if raw == nil {
		return nil
	}

	switch schema.Classify(f) {
	case schema.StrategyPassthrough:
		return raw
	case schema.StrategyDate:
		return coerceDate(raw)
	case schema.StrategyTime:
		return coerceTimeOfDay(raw)
	case schema.StrategyTimestamp:
		return coerceTimestamp(raw, false)
	case schema.StrategyTimestampTZ:
		return coerceTimestamp(raw, true)
	case schema.StrategyInterval:
		return coerceInterval(raw, f)
	case schema.StrategyStruct:
		return coerceStruct(raw, f)
	case schema.StrategyList:
		return coerceList(raw, f)
	case schema.StrategyMap:
		return coerceMap(raw, f)
	case schema.StrategyBinary:
		return coerceBinary(raw, f)
	case schema.StrategyDecimal:
		return coerceDecimal(raw)
	case schema.StrategyUUID:
		return coerceUUID(raw)
	default:
		return coerceFallback(raw)
	}
}

// coerceInterval decodes the physical interval encodings into the
// canonical {months, days, microseconds} form. Three shapes occur on
// the wire:
//
//   - [months, days, micros]
//   - [months, days, nanosHi, nanosLo] with the two halves of a
//     64-bit nanosecond count needing recombination
//   - [a, b] qualified by the field's declared sub-unit
func coerceInterval(raw any, f schema.FieldDescriptor) any {
	if iv, ok := raw.(types.Interval); ok {
		return iv
	}
	if s, ok := raw.(string); ok {
		if iv, ok := parseIntervalText(s); ok {
			return iv
		}
		return raw
	}
	parts, ok := toSlice(raw)
	if !ok {
		return raw
	}

	switch len(parts) {
	case 3:
		months, ok1 := toInt64(parts[0])
		days, ok2 := toInt64(parts[1])
		micros, ok3 := toInt64(parts[2])
		if ok1 && ok2 && ok3 {
			return types.Interval{Months: int32(months), Days: int32(days), Micros: micros}
		}
	case 4:
		months, ok1 := toInt64(parts[0])
		days, ok2 := toInt64(parts[1])
		hi, ok3 := toInt64(parts[2])
		lo, ok4 := toInt64(parts[3])
		if ok1 && ok2 && ok3 && ok4 {
			nanos := hi<<32 | int64(uint32(lo))
			return types.Interval{Months: int32(months), Days: int32(days), Micros: nanos / 1000}
		}
	case 2:
		a, ok1 := toInt64(parts[0])
		b, ok2 := toInt64(parts[1])
		if !ok1 || !ok2 {
			break
		}
		switch f.Meta.SubUnit {
		case "YEAR_MONTH":
			return types.Interval{Months: int32(a*12 + b)}
		case "DAY_TIME":
			return types.Interval{Days: int32(a), Micros: b * 1000}
		}
	}
	return raw
}

// coerceStruct reconciles a raw struct value against the declared
// child fields. Positional input zips by index; keyed input recurses
// per declared child by name and passes unknown keys through
// unmodified.
func coerceStruct(raw any, f schema.FieldDescriptor) any {
	if s, ok := raw.(*types.Struct); ok {
		return s
	}

	out := types.NewStruct()
	if parts, ok := toSlice(raw); ok {
		for i, part := range parts {
			if i < len(f.Children) {
				child := f.Children[i]
				out.Set(child.Name, Coerce(part, child))
			} else {
				out.Set(fmt.Sprintf("%d", i), part)
			}
		}
		return out
	}
	if m, ok := raw.(map[string]any); ok {
		seen := make(map[string]bool, len(f.Children))
		for _, child := range f.Children {
			if v, present := m[child.Name]; present {
				out.Set(child.Name, Coerce(v, child))
				seen[child.Name] = true
			}
		}
		// Unknown keys pass through untouched, in sorted order for
		// deterministic output.
		extras := make([]string, 0)
		for k := range m {
			if !seen[k] {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		for _, k := range extras {
			out.Set(k, m[k])
		}
		return out
	}
	return raw
}

// coerceList flattens the raw value to an ordered []any, recursively
// coercing elements against the declared element field when present.
func coerceList(raw any, f schema.FieldDescriptor) any {
	parts, ok := toSlice(raw)
	if !ok {
		return raw
	}
	var elem *schema.FieldDescriptor
	if len(f.Children) > 0 {
		elem = &f.Children[0]
	}
	out := make([]any, len(parts))
	for i, part := range parts {
		if elem != nil {
			out[i] = Coerce(part, *elem)
		} else {
			out[i] = coerceFallback(part)
		}
	}
	return out
}

// coerceMap renders a MAP value as the canonical "{k=v, k=v}" string,
// preserving the delivered entry order. Go maps have no delivery
// order, so they are sorted by stringified key to keep the output
// deterministic.
func coerceMap(raw any, f schema.FieldDescriptor) any {
	var keyField, valField *schema.FieldDescriptor
	if len(f.Children) > 0 {
		keyField = &f.Children[0]
	}
	if len(f.Children) > 1 {
		valField = &f.Children[1]
	}

	coerceKey := func(k any) any {
		if keyField != nil {
			return Coerce(k, *keyField)
		}
		return k
	}
	coerceVal := func(v any) any {
		if valField != nil {
			return Coerce(v, *valField)
		}
		return v
	}

	var entries []MapEntry
	switch v := raw.(type) {
	case []MapEntry:
		entries = v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, MapEntry{Key: k, Value: v[k]})
		}
	default:
		// Pair-sequence shape: [[k, v], [k, v], ...]
		parts, ok := toSlice(raw)
		if !ok {
			return raw
		}
		for _, part := range parts {
			pair, ok := toSlice(part)
			if !ok || len(pair) != 2 {
				return raw
			}
			entries = append(entries, MapEntry{Key: pair[0], Value: pair[1]})
		}
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", coerceKey(e.Key), coerceVal(e.Value))
	}
	b.WriteByte('}')
	return b.String()
}

// coerceBinary disambiguates bit-string vs blob and applies the
// chosen representation.
func coerceBinary(raw any, f schema.FieldDescriptor) any {
	b, ok := rawBytes(raw)
	if !ok {
		return raw
	}
	return ApplyBinary(ResolveBinary(f, b), b, f)
}

func coerceDecimal(raw any) any {
	switch v := raw.(type) {
	case []byte:
		return string(v)
	default:
		return v
	}
}

func coerceUUID(raw any) any {
	switch v := raw.(type) {
	case uuid.UUID:
		return v
	case [16]byte:
		return uuid.UUID(v)
	case []byte:
		if u, err := uuid.FromBytes(v); err == nil {
			return u
		}
	case string:
		if u, err := uuid.Parse(v); err == nil {
			return u
		}
	}
	return raw
}

// coerceFallback handles unrecognized types: typed-array flattening,
// a ToSlice conversion, driver.Valuer, json round-trip, and finally
// the raw value unchanged.
func coerceFallback(raw any) any {
	if raw == nil {
		return nil
	}
	if parts, ok := toSlice(raw); ok {
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = coerceFallback(p)
		}
		return out
	}
	if ts, ok := raw.(interface{ ToSlice() []any }); ok {
		return ts.ToSlice()
	}
	if valuer, ok := raw.(driver.Valuer); ok {
		if v, err := valuer.Value(); err == nil {
			return v
		}
	}
	if m, ok := raw.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			var v any
			if err := json.Unmarshal(data, &v); err == nil {
				return v
			}
		}
	}
	return raw
}

// rawBytes extracts the byte form of a binary value.
func rawBytes(raw any) ([]byte, bool) {
	switch v := raw.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}

// toSlice converts any slice or array value (except []byte) to []any.
func toSlice(raw any) ([]any, bool) {
	if parts, ok := raw.([]any); ok {
		return parts, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toInt64 widens any integral value to int64.
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		if v == float32(int64(v)) {
			return int64(v), true
		}
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}
