package engine

import (
	"unsafe"
)

// duckBlob mirrors the C duckdb_blob struct returned by value from
// duckdb_value_blob. The data pointer is owned by the result and must
// be copied before the result is destroyed.
type duckBlob struct {
	data unsafe.Pointer
	size uint64
}

// bindings is the registered slice of the DuckDB C API this module
// needs: lifecycle, direct queries, prepared statements, and
// cell-level value access.
type bindings struct {
	open       func(path unsafe.Pointer, db *Database) uint32
	close      func(db *Database)
	connect    func(db Database, conn *Connection) uint32
	disconnect func(conn *Connection)

	query         func(conn Connection, query unsafe.Pointer, result *Result) uint32
	destroyResult func(result *Result)
	resultError   func(result *Result) unsafe.Pointer

	prepare           func(conn Connection, query unsafe.Pointer, stmt *PreparedStatement) uint32
	executePrepared   func(stmt PreparedStatement, result *Result) uint32
	destroyPrepare    func(stmt *PreparedStatement)
	clearBindings     func(stmt PreparedStatement) uint32
	preparedStmtType  func(stmt PreparedStatement) uint32
	nparams           func(stmt PreparedStatement) uint64
	resultStmtType    func(result *Result) uint32
	rowsChanged       func(result *Result) uint64
	rowCount          func(result *Result) uint64
	columnCount       func(result *Result) uint64
	columnName        func(result *Result, col uint64) unsafe.Pointer
	columnType        func(result *Result, col uint64) uint32

	valueIsNull  func(result *Result, col, row uint64) bool
	valueBoolean func(result *Result, col, row uint64) bool
	valueInt8    func(result *Result, col, row uint64) int8
	valueInt16   func(result *Result, col, row uint64) int16
	valueInt32   func(result *Result, col, row uint64) int32
	valueInt64   func(result *Result, col, row uint64) int64
	valueUint8   func(result *Result, col, row uint64) uint8
	valueUint16  func(result *Result, col, row uint64) uint16
	valueUint32  func(result *Result, col, row uint64) uint32
	valueUint64  func(result *Result, col, row uint64) uint64
	valueFloat   func(result *Result, col, row uint64) float32
	valueDouble  func(result *Result, col, row uint64) float64
	valueVarchar func(result *Result, col, row uint64) unsafe.Pointer
	valueDate    func(result *Result, col, row uint64) int32
	valueTime    func(result *Result, col, row uint64) int64
	valueBlob    func(result *Result, col, row uint64) duckBlob
	free         func(ptr unsafe.Pointer)

	bindNull    func(stmt PreparedStatement, idx uint64) uint32
	bindBoolean func(stmt PreparedStatement, idx uint64, val bool) uint32
	bindInt64   func(stmt PreparedStatement, idx uint64, val int64) uint32
	bindUint64  func(stmt PreparedStatement, idx uint64, val uint64) uint32
	bindDouble  func(stmt PreparedStatement, idx uint64, val float64) uint32
	bindVarchar func(stmt PreparedStatement, idx uint64, val unsafe.Pointer) uint32
	bindBlob    func(stmt PreparedStatement, idx uint64, data unsafe.Pointer, length uint64) uint32
}

func (b *bindings) register(lib *library) error {
	regs := []struct {
		fn   any
		name string
	}{
		{&b.open, "duckdb_open"},
		{&b.close, "duckdb_close"},
		{&b.connect, "duckdb_connect"},
		{&b.disconnect, "duckdb_disconnect"},
		{&b.query, "duckdb_query"},
		{&b.destroyResult, "duckdb_destroy_result"},
		{&b.resultError, "duckdb_result_error"},
		{&b.prepare, "duckdb_prepare"},
		{&b.executePrepared, "duckdb_execute_prepared"},
		{&b.destroyPrepare, "duckdb_destroy_prepare"},
		{&b.clearBindings, "duckdb_clear_bindings"},
		{&b.preparedStmtType, "duckdb_prepared_statement_type"},
		{&b.nparams, "duckdb_nparams"},
		{&b.resultStmtType, "duckdb_result_statement_type"},
		{&b.rowsChanged, "duckdb_rows_changed"},
		{&b.rowCount, "duckdb_row_count"},
		{&b.columnCount, "duckdb_column_count"},
		{&b.columnName, "duckdb_column_name"},
		{&b.columnType, "duckdb_column_type"},
		{&b.valueIsNull, "duckdb_value_is_null"},
		{&b.valueBoolean, "duckdb_value_boolean"},
		{&b.valueInt8, "duckdb_value_int8"},
		{&b.valueInt16, "duckdb_value_int16"},
		{&b.valueInt32, "duckdb_value_int32"},
		{&b.valueInt64, "duckdb_value_int64"},
		{&b.valueUint8, "duckdb_value_uint8"},
		{&b.valueUint16, "duckdb_value_uint16"},
		{&b.valueUint32, "duckdb_value_uint32"},
		{&b.valueUint64, "duckdb_value_uint64"},
		{&b.valueFloat, "duckdb_value_float"},
		{&b.valueDouble, "duckdb_value_double"},
		{&b.valueVarchar, "duckdb_value_varchar"},
		{&b.valueDate, "duckdb_value_date"},
		{&b.valueTime, "duckdb_value_time"},
		{&b.valueBlob, "duckdb_value_blob"},
		{&b.free, "duckdb_free"},
		{&b.bindNull, "duckdb_bind_null"},
		{&b.bindBoolean, "duckdb_bind_boolean"},
		{&b.bindInt64, "duckdb_bind_int64"},
		{&b.bindUint64, "duckdb_bind_uint64"},
		{&b.bindDouble, "duckdb_bind_double"},
		{&b.bindVarchar, "duckdb_bind_varchar"},
		{&b.bindBlob, "duckdb_bind_blob"},
	}
	for _, r := range regs {
		if err := lib.register(r.fn, r.name); err != nil {
			return err
		}
	}
	return nil
}

// toPtr converts a Go string to a NUL-terminated C string pointer.
func toPtr(s string) unsafe.Pointer {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return unsafe.Pointer(&buf[0])
}

// ptrToString copies a NUL-terminated C string into a Go string.
func ptrToString(ptr unsafe.Pointer) string {
	if ptr == nil {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Pointer(uintptr(ptr) + uintptr(length))) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(ptr), length))
}
