// Package driver implements a database/sql driver named "duckbridge"
// on top of the engine binding. Every value surfaced through Rows has
// already been coerced to its canonical Go form.
package driver

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"sync"

	"github.com/duckbridge/duckbridge-go/internal/engine"
)

func init() {
	sql.Register("duckbridge", &Driver{})
}

// Driver implements driver.Driver. The engine library loads lazily on
// first open and is shared by every connection.
type Driver struct {
	initOnce sync.Once
	engine   *engine.Engine
	initErr  error
}

func (d *Driver) ensureEngine() (*engine.Engine, error) {
	d.initOnce.Do(func() {
		d.engine, d.initErr = engine.New()
	})
	if d.initErr != nil {
		return nil, fmt.Errorf("initialize duckdb engine: %w", d.initErr)
	}
	return d.engine, nil
}

// Open opens a new connection to the database at the given path.
func (d *Driver) Open(name string) (driver.Conn, error) {
	eng, err := d.ensureEngine()
	if err != nil {
		return nil, err
	}

	db, err := eng.OpenDatabase(name)
	if err != nil {
		return nil, err
	}
	conn, err := eng.Connect(db)
	if err != nil {
		eng.CloseDatabase(db)
		return nil, err
	}

	return &Conn{eng: eng, db: db, conn: conn}, nil
}

// OpenConnector returns a connector for the given path.
func (d *Driver) OpenConnector(name string) (driver.Connector, error) {
	if _, err := d.ensureEngine(); err != nil {
		return nil, err
	}
	return &Connector{driver: d, name: name}, nil
}
