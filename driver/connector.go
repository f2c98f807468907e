package driver

import (
	"context"
	"database/sql/driver"
)

// Connector implements driver.Connector.
type Connector struct {
	driver *Driver
	name   string
}

// Connect opens a new connection.
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return c.driver.Open(c.name)
}

// Driver returns the underlying driver.
func (c *Connector) Driver() driver.Driver {
	return c.driver
}
