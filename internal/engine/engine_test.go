package engine

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/duckbridge/duckbridge-go/result"
	"github.com/duckbridge/duckbridge-go/schema"
)

func TestResultReservesCStructStorage(t *testing.T) {
	// duckdb_query and duckdb_execute_prepared write the full 48-byte
	// duckdb_result struct through the out-pointer; an undersized Go
	// value would let the library write past the allocation.
	require.Equal(t, uintptr(48), unsafe.Sizeof(Result{}))
}

func TestModeFromStmtType(t *testing.T) {
	rows := []uint32{stmtTypeSelect, stmtTypeExplain, stmtTypePragma, stmtTypeCall, stmtTypeExecute}
	for _, st := range rows {
		require.Equal(t, result.ModeRows, modeFromStmtType(st))
	}
	mutations := []uint32{stmtTypeInsert, stmtTypeUpdate, stmtTypeDelete, stmtTypeCopy}
	for _, st := range mutations {
		require.Equal(t, result.ModeMutation, modeFromStmtType(st))
	}
	other := []uint32{stmtTypeInvalid, stmtTypeCreate, stmtTypeDrop, stmtTypeTransaction, stmtTypeLoad}
	for _, st := range other {
		require.Equal(t, result.ModeUnknown, modeFromStmtType(st))
	}
}

func TestLogicalFromDuckType(t *testing.T) {
	cases := map[uint32]schema.LogicalType{
		duckTypeBoolean:     schema.TypeBoolean,
		duckTypeInteger:     schema.TypeNumeric,
		duckTypeHugeint:     schema.TypeNumeric,
		duckTypeVarchar:     schema.TypeText,
		duckTypeEnum:        schema.TypeText,
		duckTypeDate:        schema.TypeDate,
		duckTypeTime:        schema.TypeTime,
		duckTypeTimestamp:   schema.TypeTimestamp,
		duckTypeTimestampNS: schema.TypeTimestamp,
		duckTypeTimestampTZ: schema.TypeTimestampTZ,
		duckTypeInterval:    schema.TypeInterval,
		duckTypeStruct:      schema.TypeStruct,
		duckTypeList:        schema.TypeList,
		duckTypeMap:         schema.TypeMap,
		duckTypeBlob:        schema.TypeBinary,
		duckTypeBit:         schema.TypeFixedBinary,
		duckTypeDecimal:     schema.TypeDecimal,
		duckTypeUUID:        schema.TypeUUID,
		duckTypeUnion:       schema.TypeUnknown,
		duckTypeInvalid:     schema.TypeUnknown,
	}
	for dt, want := range cases {
		require.Equal(t, want, logicalFromDuckType(dt), duckTypeName(dt))
	}
}

func TestDuckTypeNameRoundTrip(t *testing.T) {
	require.Equal(t, "BIT", duckTypeName(duckTypeBit))
	require.Equal(t, "TIMESTAMPTZ", duckTypeName(duckTypeTimestampTZ))
	require.Equal(t, "INVALID", duckTypeName(duckTypeInvalid))
}

func TestExtractNested(t *testing.T) {
	v := extractNested(`[1, 2, 3]`)
	require.Equal(t, []any{float64(1), float64(2), float64(3)}, v)

	v = extractNested(`{"id": 7}`)
	require.Equal(t, map[string]any{"id": float64(7)}, v)

	// Non-JSON nested renderings pass through as text.
	require.Equal(t, "{a=1, b=2}", extractNested("{a=1, b=2}"))
	require.Equal(t, "plain", extractNested("plain"))
}

// newTestEngine loads the library or skips when it is unavailable.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New()
	if err != nil {
		t.Skipf("duckdb library unavailable: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestQueryRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	db, err := e.OpenDatabase(":memory:")
	require.NoError(t, err)
	defer e.CloseDatabase(db)

	conn, err := e.Connect(db)
	require.NoError(t, err)
	defer e.Disconnect(conn)

	batch, err := e.Query(conn, "select 42 as answer")
	require.NoError(t, err)
	require.Len(t, batch.Fields, 1)
	require.Equal(t, "answer", batch.Fields[0].Name)
	require.Equal(t, result.ModeRows, batch.Mode)
	require.Len(t, batch.Rows, 1)
	require.Equal(t, int32(42), batch.Rows[0]["answer"])
}

func TestExecReportsChangedRows(t *testing.T) {
	e := newTestEngine(t)

	db, err := e.OpenDatabase(":memory:")
	require.NoError(t, err)
	defer e.CloseDatabase(db)

	conn, err := e.Connect(db)
	require.NoError(t, err)
	defer e.Disconnect(conn)

	_, err = e.Exec(conn, "create table t (id integer)")
	require.NoError(t, err)

	changed, err := e.Exec(conn, "insert into t values (1), (2), (3)")
	require.NoError(t, err)
	require.Equal(t, uint64(3), changed)
}

func TestPreparedStatementMode(t *testing.T) {
	e := newTestEngine(t)

	db, err := e.OpenDatabase(":memory:")
	require.NoError(t, err)
	defer e.CloseDatabase(db)

	conn, err := e.Connect(db)
	require.NoError(t, err)
	defer e.Disconnect(conn)

	stmt, err := e.Prepare(conn, "select ? as v")
	require.NoError(t, err)
	defer e.DestroyPrepared(stmt)

	require.Equal(t, 1, e.ParamCount(stmt))
	require.Equal(t, result.ModeRows, e.StatementMode(stmt))

	require.NoError(t, e.BindValue(stmt, 0, int64(7)))
	batch, err := e.ExecutePrepared(stmt)
	require.NoError(t, err)
	require.Equal(t, result.ModeRows, batch.Mode)
	require.Equal(t, int64(7), batch.Rows[0]["v"])
}
