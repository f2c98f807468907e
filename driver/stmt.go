package driver

import (
	"context"
	"database/sql/driver"
	"fmt"

	"github.com/duckbridge/duckbridge-go/internal/engine"
	"github.com/duckbridge/duckbridge-go/result"
)

// Stmt implements driver.Stmt.
type Stmt struct {
	conn   *Conn
	stmt   engine.PreparedStatement
	query  string
	closed bool
}

// Close releases the prepared statement.
func (s *Stmt) Close() error {
	if !s.closed {
		s.conn.eng.DestroyPrepared(s.stmt)
		s.closed = true
	}
	return nil
}

// NumInput returns the number of placeholder parameters.
func (s *Stmt) NumInput() int {
	return s.conn.eng.ParamCount(s.stmt)
}

// Exec executes a statement that doesn't return rows.
func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), valuesToNamed(args))
}

// ExecContext executes a statement with context.
func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	res, err := s.run(ctx, args)
	if err != nil {
		return nil, err
	}
	var affected int64
	if res.AffectedCount != nil {
		affected = int64(*res.AffectedCount)
	}
	return &Result{rowsAffected: affected}, nil
}

// Query executes a query that returns rows.
func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), valuesToNamed(args))
}

// QueryContext executes a query with context.
func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.queryContext(ctx, args, false)
}

func (s *Stmt) queryContext(ctx context.Context, args []driver.NamedValue, ownStmt bool) (driver.Rows, error) {
	batch, err := s.execute(ctx, args)
	if err != nil {
		return nil, err
	}
	var owned *Stmt
	if ownStmt {
		owned = s
	}
	return newRows(ctx, batch, owned), nil
}

func (s *Stmt) run(ctx context.Context, args []driver.NamedValue) (*result.Result, error) {
	batch, err := s.execute(ctx, args)
	if err != nil {
		return nil, err
	}
	return result.Assemble(batch), nil
}

func (s *Stmt) execute(ctx context.Context, args []driver.NamedValue) (*result.Batch, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	eng := s.conn.eng
	if err := eng.ClearBindings(s.stmt); err != nil {
		return nil, err
	}
	for _, arg := range args {
		if err := eng.BindValue(s.stmt, arg.Ordinal-1, arg.Value); err != nil {
			return nil, fmt.Errorf("bind parameter %d: %w", arg.Ordinal, err)
		}
	}
	return eng.ExecutePrepared(s.stmt)
}

func valuesToNamed(args []driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(args))
	for i, v := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: v}
	}
	return named
}

// Result implements driver.Result. DuckDB has no insert-id notion.
type Result struct {
	rowsAffected int64
}

// LastInsertId is unsupported.
func (r *Result) LastInsertId() (int64, error) {
	return 0, fmt.Errorf("LastInsertId is not supported")
}

// RowsAffected returns the number of rows changed.
func (r *Result) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}
