package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/duckbridge/duckbridge-go/result"
	"github.com/duckbridge/duckbridge-go/schema"
	"github.com/duckbridge/duckbridge-go/types"
)

// Rows implements driver.Rows over an assembled result. Values are
// canonical coerced values, in schema field order.
type Rows struct {
	fields []schema.FieldDescriptor
	rows   []result.Row
	pos    int
	stmt   *Stmt // set when the rows own a prepared statement
	ctx    context.Context
}

func newRows(ctx context.Context, batch *result.Batch, stmt *Stmt) *Rows {
	res := result.Assemble(batch)
	return &Rows{
		fields: batch.Fields,
		rows:   res.Rows,
		stmt:   stmt,
		ctx:    ctx,
	}
}

// Columns returns the column names in schema order.
func (r *Rows) Columns() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Close releases the rows and any owned statement.
func (r *Rows) Close() error {
	r.rows = nil
	if r.stmt != nil {
		_ = r.stmt.Close()
		r.stmt = nil
	}
	return nil
}

// Next populates dest with the next row.
func (r *Rows) Next(dest []driver.Value) error {
	if r.ctx != nil {
		select {
		case <-r.ctx.Done():
			return r.ctx.Err()
		default:
		}
	}

	if r.pos >= len(r.rows) {
		return io.EOF
	}
	row := r.rows[r.pos]
	r.pos++

	if len(dest) > len(r.fields) {
		return fmt.Errorf("destination has %d columns, result has %d", len(dest), len(r.fields))
	}
	for i := range dest {
		dest[i] = toDriverValue(row[r.fields[i].Name])
	}
	return nil
}

// ColumnTypeDatabaseTypeName returns the declared source type name.
func (r *Rows) ColumnTypeDatabaseTypeName(index int) string {
	if index < 0 || index >= len(r.fields) {
		return ""
	}
	if src := r.fields[index].Meta.SourceType; src != "" {
		return src
	}
	return r.fields[index].Logical.String()
}

// ColumnTypeScanType returns the Go type a column scans into.
func (r *Rows) ColumnTypeScanType(index int) reflect.Type {
	if index < 0 || index >= len(r.fields) {
		return reflect.TypeOf(new(any)).Elem()
	}
	switch r.fields[index].Logical {
	case schema.TypeBoolean:
		return reflect.TypeOf(false)
	case schema.TypeNumeric:
		return reflect.TypeOf(int64(0))
	case schema.TypeText, schema.TypeMap, schema.TypeDecimal:
		return reflect.TypeOf("")
	case schema.TypeDate, schema.TypeTime, schema.TypeTimestamp, schema.TypeTimestampTZ:
		return reflect.TypeOf(time.Time{})
	case schema.TypeInterval:
		return reflect.TypeOf(types.Interval{})
	case schema.TypeBinary, schema.TypeFixedBinary:
		return reflect.TypeOf([]byte(nil))
	default:
		return reflect.TypeOf(new(any)).Elem()
	}
}

// toDriverValue keeps driver.Value-compatible types as they are and
// stringifies the rich values database/sql cannot carry natively,
// unless the caller scans into *any (database/sql passes those
// through).
func toDriverValue(v any) driver.Value {
	switch x := v.(type) {
	case nil, bool, int64, float64, string, []byte, time.Time:
		return x
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return x
	case float32:
		return float64(x)
	default:
		// Interval, Struct, List, UUID travel as-is; database/sql
		// hands them to Scan untouched for *any destinations.
		return x
	}
}
