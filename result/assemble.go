// Package result assembles raw columnar batches into coerced row sets
// or affected-row counts.
package result

import (
	"strings"

	"github.com/duckbridge/duckbridge-go/coerce"
	"github.com/duckbridge/duckbridge-go/schema"
)

// ExecutionMode is the statement-kind signal delivered by the
// execution layer alongside a batch.
type ExecutionMode int

const (
	// ModeUnknown - no signal available; classification falls back to
	// column-name sniffing.
	ModeUnknown ExecutionMode = iota
	// ModeRows - the statement produces rows (SELECT and friends).
	ModeRows
	// ModeMutation - the statement reports an affected-row count.
	ModeMutation
)

// Batch is one columnar result set: an ordered schema plus raw rows.
type Batch struct {
	Fields []schema.FieldDescriptor
	Rows   []map[string]any
	Mode   ExecutionMode
}

// Row is one assembled row, keyed by field name. Column order is the
// batch's schema field order.
type Row map[string]any

// Result is either a row set or an affected-row count, never both.
type Result struct {
	Rows []Row
	// AffectedCount is set only for mutation output.
	AffectedCount *uint64
}

// Column names that conventionally carry an affected-row count.
var countAliases = map[string]bool{
	"count":         true,
	"changes":       true,
	"rows_affected": true,
	"affected_rows": true,
}

// Assemble walks a batch and produces the final result. A batch
// collapses to a count only when it has exactly one column, that
// column carries a count alias, and the execution mode does not say
// the statement produces rows: an explicit ModeRows always wins over
// name matching, since a SELECT may legitimately project a column
// named "count".
func Assemble(batch *Batch) *Result {
	if isCountBatch(batch) {
		var count uint64
		if len(batch.Rows) > 0 {
			if n, ok := countValue(batch.Rows[0][batch.Fields[0].Name]); ok {
				count = n
			}
		}
		return &Result{Rows: []Row{}, AffectedCount: &count}
	}

	// Binary fields resolve bit-string vs blob once per field, from
	// the first non-null value, so classification cannot drift
	// row-to-row within the batch.
	binaryKinds := resolveBinaryKinds(batch)

	rows := make([]Row, len(batch.Rows))
	for i, raw := range batch.Rows {
		row := make(Row, len(batch.Fields))
		for _, f := range batch.Fields {
			v := raw[f.Name]
			if v == nil {
				row[f.Name] = nil
				continue
			}
			if kind, ok := binaryKinds[f.Name]; ok {
				if b, isBytes := asBytes(v); isBytes {
					row[f.Name] = coerce.ApplyBinary(kind, b, f)
					continue
				}
			}
			row[f.Name] = coerce.Coerce(v, f)
		}
		rows[i] = row
	}
	return &Result{Rows: rows}
}

func isCountBatch(batch *Batch) bool {
	if len(batch.Fields) != 1 {
		return false
	}
	if batch.Mode == ModeRows {
		return false
	}
	return countAliases[strings.ToLower(batch.Fields[0].Name)]
}

func resolveBinaryKinds(batch *Batch) map[string]coerce.BinaryKind {
	kinds := make(map[string]coerce.BinaryKind)
	for _, f := range batch.Fields {
		if schema.Classify(f) != schema.StrategyBinary {
			continue
		}
		for _, raw := range batch.Rows {
			b, ok := asBytes(raw[f.Name])
			if !ok {
				continue
			}
			kinds[f.Name] = coerce.ResolveBinary(f, b)
			break
		}
	}
	return kinds
}

func asBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case string:
		return []byte(b), true
	default:
		return nil, false
	}
}

func countValue(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case int64:
		if n >= 0 {
			return uint64(n), true
		}
	case int:
		if n >= 0 {
			return uint64(n), true
		}
	case int32:
		if n >= 0 {
			return uint64(n), true
		}
	case uint32:
		return uint64(n), true
	case float64:
		if n >= 0 && n == float64(uint64(n)) {
			return uint64(n), true
		}
	}
	return 0, false
}
