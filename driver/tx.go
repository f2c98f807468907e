package driver

import (
	"database/sql/driver"
)

// Tx implements driver.Tx.
type Tx struct {
	conn     *Conn
	finished bool
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	if tx.finished {
		return driver.ErrBadConn
	}
	_, err := tx.conn.eng.Exec(tx.conn.conn, "COMMIT")
	tx.finished = true
	return err
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	if tx.finished {
		return driver.ErrBadConn
	}
	_, err := tx.conn.eng.Exec(tx.conn.conn, "ROLLBACK")
	tx.finished = true
	return err
}
