package driver

import (
	"context"
	"database/sql/driver"

	"github.com/duckbridge/duckbridge-go/internal/engine"
)

// Conn implements driver.Conn over one engine connection.
type Conn struct {
	eng  *engine.Engine
	db   engine.Database
	conn engine.Connection
}

// Prepare returns a prepared statement.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

// PrepareContext returns a prepared statement.
func (c *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	stmt, err := c.eng.Prepare(c.conn, query)
	if err != nil {
		return nil, err
	}
	return &Stmt{conn: c, stmt: stmt, query: query}, nil
}

// Close closes the connection and its database handle.
func (c *Conn) Close() error {
	c.eng.Disconnect(c.conn)
	c.eng.CloseDatabase(c.db)
	return nil
}

// Begin starts a transaction.
func (c *Conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx starts a transaction with options.
func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if _, err := c.eng.Exec(c.conn, "BEGIN TRANSACTION"); err != nil {
		return nil, err
	}
	return &Tx{conn: c}, nil
}

// ExecContext executes a statement that doesn't return rows.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(args) > 0 {
		stmt, err := c.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer stmt.Close()
		return stmt.(*Stmt).ExecContext(ctx, args)
	}

	changed, err := c.eng.Exec(c.conn, query)
	if err != nil {
		return nil, err
	}
	return &Result{rowsAffected: int64(changed)}, nil
}

// QueryContext executes a query that returns rows.
func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(args) > 0 {
		stmt, err := c.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		// The statement is released when the rows close.
		return stmt.(*Stmt).queryContext(ctx, args, true)
	}

	batch, err := c.eng.Query(c.conn, query)
	if err != nil {
		return nil, err
	}
	return newRows(ctx, batch, nil), nil
}
