// Package duckbridge bridges DuckDB's columnar result format to
// native Go values and rewrites logical table references in generated
// SQL into arbitrary source expressions such as read_json or
// read_parquet calls.
//
// The database/sql driver registers under the name "duckbridge":
//
//	import (
//	    "database/sql"
//	    _ "github.com/duckbridge/duckbridge-go"
//	)
//
//	func main() {
//	    db, err := sql.Open("duckbridge", ":memory:")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer db.Close()
//	}
//
// Query compilation with table mappings lives in the sqlgen and
// tablemap packages; the value coercion engine lives in coerce and
// result.
package duckbridge

import (
	// Register the driver
	_ "github.com/duckbridge/duckbridge-go/driver"
)

// Version is the version of the duckbridge module.
const Version = "0.1.0"
