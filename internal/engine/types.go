package engine

// Opaque pointer handles into the DuckDB C API.
type (
	Database          uintptr
	Connection        uintptr
	PreparedStatement uintptr
)

// Result reserves storage for the C duckdb_result out-struct, which
// duckdb_query and duckdb_execute_prepared write through the pointer
// they are given: five deprecated idx_t/pointer fields plus the
// internal data pointer, 48 bytes on 64-bit targets. It is always
// passed by pointer and its contents are only touched by the library.
type Result struct {
	_ [6]uint64
}

// C API return states.
const (
	stateSuccess = 0
	stateError   = 1
)

// DuckDB column type enum, as reported by duckdb_column_type.
const (
	duckTypeInvalid = iota
	duckTypeBoolean
	duckTypeTinyint
	duckTypeSmallint
	duckTypeInteger
	duckTypeBigint
	duckTypeUTinyint
	duckTypeUSmallint
	duckTypeUInteger
	duckTypeUBigint
	duckTypeFloat
	duckTypeDouble
	duckTypeTimestamp
	duckTypeDate
	duckTypeTime
	duckTypeInterval
	duckTypeHugeint
	duckTypeVarchar
	duckTypeBlob
	duckTypeDecimal
	duckTypeTimestampS
	duckTypeTimestampMS
	duckTypeTimestampNS
	duckTypeEnum
	duckTypeList
	duckTypeStruct
	duckTypeMap
	duckTypeUUID
	duckTypeUnion
	duckTypeBit
	duckTypeTimeTZ
	duckTypeTimestampTZ
)

// DuckDB statement type enum, as reported by
// duckdb_prepared_statement_type and duckdb_result_statement_type.
const (
	stmtTypeInvalid = iota
	stmtTypeSelect
	stmtTypeInsert
	stmtTypeUpdate
	stmtTypeExplain
	stmtTypeDelete
	stmtTypePrepare
	stmtTypeCreate
	stmtTypeExecute
	stmtTypeAlter
	stmtTypeTransaction
	stmtTypeCopy
	stmtTypeAnalyze
	stmtTypeVariableSet
	stmtTypeCreateFunc
	stmtTypeDrop
	stmtTypeExport
	stmtTypePragma
	stmtTypeVacuum
	stmtTypeCall
	stmtTypeSet
	stmtTypeLoad
	stmtTypeRelation
	stmtTypeAttach
	stmtTypeDetach
	stmtTypeMulti
)

func duckTypeName(t uint32) string {
	switch t {
	case duckTypeBoolean:
		return "BOOLEAN"
	case duckTypeTinyint:
		return "TINYINT"
	case duckTypeSmallint:
		return "SMALLINT"
	case duckTypeInteger:
		return "INTEGER"
	case duckTypeBigint:
		return "BIGINT"
	case duckTypeUTinyint:
		return "UTINYINT"
	case duckTypeUSmallint:
		return "USMALLINT"
	case duckTypeUInteger:
		return "UINTEGER"
	case duckTypeUBigint:
		return "UBIGINT"
	case duckTypeFloat:
		return "FLOAT"
	case duckTypeDouble:
		return "DOUBLE"
	case duckTypeTimestamp, duckTypeTimestampS, duckTypeTimestampMS, duckTypeTimestampNS:
		return "TIMESTAMP"
	case duckTypeDate:
		return "DATE"
	case duckTypeTime, duckTypeTimeTZ:
		return "TIME"
	case duckTypeInterval:
		return "INTERVAL"
	case duckTypeHugeint:
		return "HUGEINT"
	case duckTypeVarchar:
		return "VARCHAR"
	case duckTypeBlob:
		return "BLOB"
	case duckTypeDecimal:
		return "DECIMAL"
	case duckTypeEnum:
		return "ENUM"
	case duckTypeList:
		return "LIST"
	case duckTypeStruct:
		return "STRUCT"
	case duckTypeMap:
		return "MAP"
	case duckTypeUUID:
		return "UUID"
	case duckTypeBit:
		return "BIT"
	case duckTypeTimestampTZ:
		return "TIMESTAMPTZ"
	default:
		return "INVALID"
	}
}
