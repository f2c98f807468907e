package driver

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/duckbridge/duckbridge-go/types"
)

// openTestDB opens an in-memory database or skips when the engine
// library is unavailable.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("duckbridge", ":memory:")
	require.NoError(t, err)
	// Every pooled connection opens its own in-memory database, so
	// state only persists across statements on a single connection.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("duckdb library unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDriverRegistered(t *testing.T) {
	for _, name := range sql.Drivers() {
		if name == "duckbridge" {
			return
		}
	}
	t.Fatal("driver not registered")
}

func TestQueryScalar(t *testing.T) {
	db := openTestDB(t)
	var answer int64
	require.NoError(t, db.QueryRow("select 42").Scan(&answer))
	require.Equal(t, int64(42), answer)
}

func TestExecAffectedRows(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec("create table t (id integer)")
	require.NoError(t, err)

	res, err := db.Exec("insert into t values (1), (2), (3)")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
}

func TestPreparedQueryWithArgs(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec("create table t (id integer, name varchar)")
	require.NoError(t, err)
	_, err = db.Exec("insert into t values (1, 'a'), (2, 'b')")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow("select name from t where id = ?", 2).Scan(&name))
	require.Equal(t, "b", name)
}

func TestDateScansAsTime(t *testing.T) {
	db := openTestDB(t)
	var born time.Time
	require.NoError(t, db.QueryRow("select date '1992-09-20'").Scan(&born))
	require.Equal(t, time.Date(1992, 9, 20, 0, 0, 0, 0, time.UTC), born)
}

func TestTimestampTruncatedToMilliseconds(t *testing.T) {
	db := openTestDB(t)
	var ts time.Time
	require.NoError(t, db.QueryRow("select timestamp '1992-09-20 11:30:00.123456'").Scan(&ts))
	require.Equal(t, time.Date(1992, 9, 20, 11, 30, 0, 123_000_000, time.UTC), ts)
}

func TestIntervalScansAsInterval(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.Query("select interval 1 year")
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var v any
	require.NoError(t, rows.Scan(&v))
	require.Equal(t, types.Interval{Months: 12}, v)
}

func TestNullRoundTrip(t *testing.T) {
	db := openTestDB(t)
	var v sql.NullString
	require.NoError(t, db.QueryRow("select cast(null as varchar)").Scan(&v))
	require.False(t, v.Valid)
}

func TestColumnTypeNames(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.Query("select 1 as n, 'x' as s")
	require.NoError(t, err)
	defer rows.Close()
	cols, err := rows.ColumnTypes()
	require.NoError(t, err)
	require.Len(t, cols, 2)
	require.Equal(t, "INTEGER", cols[0].DatabaseTypeName())
	require.Equal(t, "VARCHAR", cols[1].DatabaseTypeName())
}

func TestTransactionRollback(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec("create table t (id integer)")
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = tx.Exec("insert into t values (1)")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	var n int64
	require.NoError(t, db.QueryRow("select count(*) from t").Scan(&n))
	require.Zero(t, n)
}
