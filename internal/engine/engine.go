package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unsafe"

	"github.com/duckbridge/duckbridge-go/result"
	"github.com/duckbridge/duckbridge-go/schema"
)

// Engine is a loaded DuckDB library with its registered function
// table. One Engine serves any number of databases and connections.
type Engine struct {
	lib *library
	fns bindings
	log *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for load and query diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New loads the DuckDB library and registers the C API surface.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}

	lib, err := loadLibrary()
	if err != nil {
		return nil, err
	}
	if err := e.fns.register(lib); err != nil {
		_ = lib.close()
		return nil, err
	}
	e.lib = lib
	e.log.Debug("duckdb library loaded")
	return e, nil
}

// Close unloads the library.
func (e *Engine) Close() error {
	if e.lib == nil {
		return nil
	}
	err := e.lib.close()
	e.lib = nil
	return err
}

// OpenDatabase opens a database file, or an in-memory database for
// ":memory:" or the empty string.
func (e *Engine) OpenDatabase(path string) (Database, error) {
	var db Database
	if path == ":memory:" {
		path = ""
	}
	if e.fns.open(toPtr(path), &db) != stateSuccess {
		return 0, fmt.Errorf("open database %q", path)
	}
	return db, nil
}

// CloseDatabase closes a database handle.
func (e *Engine) CloseDatabase(db Database) {
	if db != 0 {
		e.fns.close(&db)
	}
}

// Connect creates a connection to an open database.
func (e *Engine) Connect(db Database) (Connection, error) {
	var conn Connection
	if e.fns.connect(db, &conn) != stateSuccess {
		return 0, fmt.Errorf("connect to database")
	}
	return conn, nil
}

// Disconnect closes a connection.
func (e *Engine) Disconnect(conn Connection) {
	if conn != 0 {
		e.fns.disconnect(&conn)
	}
}

// Query runs SQL directly and extracts the full columnar batch.
func (e *Engine) Query(conn Connection, sql string) (*result.Batch, error) {
	var res Result
	if e.fns.query(conn, toPtr(sql), &res) != stateSuccess {
		msg := e.resultError(&res)
		e.fns.destroyResult(&res)
		e.log.Error("query failed", "error", msg)
		return nil, fmt.Errorf("query failed: %s", msg)
	}
	defer e.fns.destroyResult(&res)
	e.log.Debug("query executed", "sql", sql)
	return e.extractBatch(&res), nil
}

// Exec runs SQL for its side effects and reports the changed-row
// count.
func (e *Engine) Exec(conn Connection, sql string) (uint64, error) {
	var res Result
	if e.fns.query(conn, toPtr(sql), &res) != stateSuccess {
		msg := e.resultError(&res)
		e.fns.destroyResult(&res)
		e.log.Error("exec failed", "error", msg)
		return 0, fmt.Errorf("exec failed: %s", msg)
	}
	changed := e.fns.rowsChanged(&res)
	e.fns.destroyResult(&res)
	return changed, nil
}

// Prepare compiles a statement with `?` placeholders.
func (e *Engine) Prepare(conn Connection, sql string) (PreparedStatement, error) {
	var stmt PreparedStatement
	if e.fns.prepare(conn, toPtr(sql), &stmt) != stateSuccess {
		return 0, fmt.Errorf("prepare statement: %s", sql)
	}
	return stmt, nil
}

// DestroyPrepared releases a prepared statement.
func (e *Engine) DestroyPrepared(stmt PreparedStatement) {
	if stmt != 0 {
		e.fns.destroyPrepare(&stmt)
	}
}

// ParamCount reports the number of placeholder parameters.
func (e *Engine) ParamCount(stmt PreparedStatement) int {
	return int(e.fns.nparams(stmt))
}

// StatementMode reports whether a prepared statement produces rows.
// This is the execution-mode signal the result assembler prefers over
// column-name sniffing.
func (e *Engine) StatementMode(stmt PreparedStatement) result.ExecutionMode {
	return modeFromStmtType(e.fns.preparedStmtType(stmt))
}

// ClearBindings clears any previously bound parameters.
func (e *Engine) ClearBindings(stmt PreparedStatement) error {
	if e.fns.clearBindings(stmt) != stateSuccess {
		return fmt.Errorf("clear bindings")
	}
	return nil
}

// BindValue binds one positional parameter. Parameter indexes are
// 0-based here; the C API is 1-based.
func (e *Engine) BindValue(stmt PreparedStatement, idx int, value any) error {
	pos := uint64(idx + 1)
	if value == nil {
		if e.fns.bindNull(stmt, pos) != stateSuccess {
			return fmt.Errorf("bind null at %d", idx)
		}
		return nil
	}

	status := uint32(stateError)
	switch v := value.(type) {
	case bool:
		status = e.fns.bindBoolean(stmt, pos, v)
	case int:
		status = e.fns.bindInt64(stmt, pos, int64(v))
	case int8:
		status = e.fns.bindInt64(stmt, pos, int64(v))
	case int16:
		status = e.fns.bindInt64(stmt, pos, int64(v))
	case int32:
		status = e.fns.bindInt64(stmt, pos, int64(v))
	case int64:
		status = e.fns.bindInt64(stmt, pos, v)
	case uint:
		status = e.fns.bindUint64(stmt, pos, uint64(v))
	case uint8:
		status = e.fns.bindUint64(stmt, pos, uint64(v))
	case uint16:
		status = e.fns.bindUint64(stmt, pos, uint64(v))
	case uint32:
		status = e.fns.bindUint64(stmt, pos, uint64(v))
	case uint64:
		status = e.fns.bindUint64(stmt, pos, v)
	case float32:
		status = e.fns.bindDouble(stmt, pos, float64(v))
	case float64:
		status = e.fns.bindDouble(stmt, pos, v)
	case string:
		status = e.fns.bindVarchar(stmt, pos, toPtr(v))
	case []byte:
		if len(v) == 0 {
			status = e.fns.bindBlob(stmt, pos, nil, 0)
		} else {
			status = e.fns.bindBlob(stmt, pos, unsafe.Pointer(&v[0]), uint64(len(v)))
		}
	case time.Time:
		status = e.fns.bindVarchar(stmt, pos, toPtr(v.UTC().Format("2006-01-02 15:04:05.999999")))
	default:
		return fmt.Errorf("unsupported bind type %T at %d", value, idx)
	}
	if status != stateSuccess {
		return fmt.Errorf("bind %T at %d", value, idx)
	}
	return nil
}

// ExecutePrepared runs a bound statement and extracts the batch,
// stamping it with the statement's execution mode.
func (e *Engine) ExecutePrepared(stmt PreparedStatement) (*result.Batch, error) {
	mode := e.StatementMode(stmt)
	var res Result
	if e.fns.executePrepared(stmt, &res) != stateSuccess {
		msg := e.resultError(&res)
		e.fns.destroyResult(&res)
		return nil, fmt.Errorf("execute prepared: %s", msg)
	}
	defer e.fns.destroyResult(&res)
	batch := e.extractBatch(&res)
	batch.Mode = mode
	return batch, nil
}

func (e *Engine) resultError(res *Result) string {
	ptr := e.fns.resultError(res)
	if ptr == nil {
		return "unknown error"
	}
	return ptrToString(ptr)
}

// extractBatch walks the materialized result into field descriptors
// plus raw rows. Values stay physical; coercion happens in the result
// assembler.
func (e *Engine) extractBatch(res *Result) *result.Batch {
	colCount := e.fns.columnCount(res)
	rowCount := e.fns.rowCount(res)

	fields := make([]schema.FieldDescriptor, colCount)
	colTypes := make([]uint32, colCount)
	for c := uint64(0); c < colCount; c++ {
		t := e.fns.columnType(res, c)
		colTypes[c] = t
		fields[c] = schema.NewField(
			ptrToString(e.fns.columnName(res, c)),
			logicalFromDuckType(t),
			map[string]string{"source_type": duckTypeName(t)},
		)
	}

	rows := make([]map[string]any, rowCount)
	for r := uint64(0); r < rowCount; r++ {
		row := make(map[string]any, colCount)
		for c := uint64(0); c < colCount; c++ {
			row[fields[c].Name] = e.extractValue(res, colTypes[c], c, r)
		}
		rows[r] = row
	}

	return &result.Batch{
		Fields: fields,
		Rows:   rows,
		Mode:   modeFromStmtType(e.fns.resultStmtType(res)),
	}
}

// extractValue pulls one physical cell value.
func (e *Engine) extractValue(res *Result, colType uint32, col, row uint64) any {
	if e.fns.valueIsNull(res, col, row) {
		return nil
	}

	switch colType {
	case duckTypeBoolean:
		return e.fns.valueBoolean(res, col, row)
	case duckTypeTinyint:
		return e.fns.valueInt8(res, col, row)
	case duckTypeSmallint:
		return e.fns.valueInt16(res, col, row)
	case duckTypeInteger:
		return e.fns.valueInt32(res, col, row)
	case duckTypeBigint:
		return e.fns.valueInt64(res, col, row)
	case duckTypeUTinyint:
		return e.fns.valueUint8(res, col, row)
	case duckTypeUSmallint:
		return e.fns.valueUint16(res, col, row)
	case duckTypeUInteger:
		return e.fns.valueUint32(res, col, row)
	case duckTypeUBigint:
		return e.fns.valueUint64(res, col, row)
	case duckTypeFloat:
		return e.fns.valueFloat(res, col, row)
	case duckTypeDouble:
		return e.fns.valueDouble(res, col, row)
	case duckTypeDate:
		// Raw day count since the Unix epoch; the coercer owns the
		// day/millisecond threshold rule.
		return e.fns.valueDate(res, col, row)
	case duckTypeTime, duckTypeTimeTZ:
		return e.fns.valueTime(res, col, row)
	case duckTypeTimestamp, duckTypeTimestampS, duckTypeTimestampMS,
		duckTypeTimestampNS, duckTypeTimestampTZ:
		// The C API renders timestamps as text; the coercer parses
		// and normalizes to UTC.
		return e.takeString(e.fns.valueVarchar(res, col, row))
	case duckTypeBlob, duckTypeBit:
		return e.extractBlob(res, col, row)
	case duckTypeList, duckTypeStruct, duckTypeMap:
		return extractNested(e.takeString(e.fns.valueVarchar(res, col, row)))
	case duckTypeVarchar, duckTypeInterval, duckTypeHugeint, duckTypeDecimal,
		duckTypeEnum, duckTypeUUID:
		return e.takeString(e.fns.valueVarchar(res, col, row))
	default:
		return e.takeString(e.fns.valueVarchar(res, col, row))
	}
}

func (e *Engine) extractBlob(res *Result, col, row uint64) []byte {
	blob := e.fns.valueBlob(res, col, row)
	if blob.data == nil || blob.size == 0 {
		return []byte{}
	}
	out := make([]byte, blob.size)
	copy(out, unsafe.Slice((*byte)(blob.data), blob.size))
	e.fns.free(blob.data)
	return out
}

// takeString copies a C string allocated by the library and frees it.
func (e *Engine) takeString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	s := ptrToString(ptr)
	e.fns.free(ptr)
	return s
}

// extractNested parses the engine's JSON-ish rendering of nested
// values into generic containers, so the coercer can recurse. When
// the text is not parseable JSON it is delivered as-is.
func extractNested(s string) any {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return s
}

func logicalFromDuckType(t uint32) schema.LogicalType {
	switch t {
	case duckTypeBoolean:
		return schema.TypeBoolean
	case duckTypeTinyint, duckTypeSmallint, duckTypeInteger, duckTypeBigint,
		duckTypeUTinyint, duckTypeUSmallint, duckTypeUInteger, duckTypeUBigint,
		duckTypeFloat, duckTypeDouble, duckTypeHugeint:
		return schema.TypeNumeric
	case duckTypeVarchar, duckTypeEnum:
		return schema.TypeText
	case duckTypeDate:
		return schema.TypeDate
	case duckTypeTime, duckTypeTimeTZ:
		return schema.TypeTime
	case duckTypeTimestamp, duckTypeTimestampS, duckTypeTimestampMS, duckTypeTimestampNS:
		return schema.TypeTimestamp
	case duckTypeTimestampTZ:
		return schema.TypeTimestampTZ
	case duckTypeInterval:
		return schema.TypeInterval
	case duckTypeStruct:
		return schema.TypeStruct
	case duckTypeList:
		return schema.TypeList
	case duckTypeMap:
		return schema.TypeMap
	case duckTypeBlob:
		return schema.TypeBinary
	case duckTypeBit:
		return schema.TypeFixedBinary
	case duckTypeDecimal:
		return schema.TypeDecimal
	case duckTypeUUID:
		return schema.TypeUUID
	default:
		return schema.TypeUnknown
	}
}

func modeFromStmtType(t uint32) result.ExecutionMode {
	switch t {
	case stmtTypeSelect, stmtTypeExplain, stmtTypePragma, stmtTypeCall, stmtTypeExecute:
		return result.ModeRows
	case stmtTypeInsert, stmtTypeUpdate, stmtTypeDelete, stmtTypeCopy:
		return result.ModeMutation
	default:
		return result.ModeUnknown
	}
}
