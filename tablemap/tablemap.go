// Package tablemap configures the substitution of logical table names
// with raw SQL source expressions, typically external-file read calls
// such as read_json or read_parquet. A Mapping is built once, sealed,
// and then shared read-only across any number of compilations.
package tablemap

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Mapping is an immutable logical-name-to-expression table. The zero
// value maps nothing.
type Mapping struct {
	exprs map[string]string
}

// New seals the given entries into a Mapping. The input map is copied,
// so later mutation of it does not leak into the mapping.
func New(entries map[string]string) *Mapping {
	exprs := make(map[string]string, len(entries))
	for name, expr := range entries {
		exprs[name] = expr
	}
	return &Mapping{exprs: exprs}
}

// Expr returns the raw SQL expression mapped to a logical table name.
// Absence of a mapping is not an error; unmapped names compile to
// their quoted identifier.
func (m *Mapping) Expr(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	expr, ok := m.exprs[name]
	return expr, ok
}

// Names returns the mapped logical names, sorted.
func (m *Mapping) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.exprs))
	for name := range m.exprs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReadJSON builds a read_json source expression for a file path.
// Extra options are emitted verbatim as trailing arguments, e.g.
// ReadJSON("p.json", "format = 'array'").
func ReadJSON(path string, opts ...string) string {
	return readCall("read_json", path, opts)
}

// ReadCSV builds a read_csv source expression.
func ReadCSV(path string, opts ...string) string {
	return readCall("read_csv", path, opts)
}

// ReadParquet builds a read_parquet source expression.
func ReadParquet(path string, opts ...string) string {
	return readCall("read_parquet", path, opts)
}

func readCall(fn, path string, opts []string) string {
	args := append([]string{QuoteLiteral(path)}, opts...)
	return fmt.Sprintf("%s(%s)", fn, strings.Join(args, ", "))
}

// QuoteLiteral wraps a string in single quotes, doubling any embedded
// single quote.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier rejects names that cannot be used as table or
// view identifiers. The check runs before any SQL is issued.
func ValidateIdentifier(name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: must match [A-Za-z_][A-Za-z0-9_]*", name)
	}
	return nil
}

// Execer is the slice of database/sql used by the creation helpers;
// *sql.DB and *sql.Tx both satisfy it.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// CreateView materializes a mapped expression as a view, so that the
// logical name also resolves inside the engine. The name is validated
// before any SQL is issued.
func CreateView(db Execer, name, sourceExpr string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf(`create or replace view "%s" as select * from %s`, name, sourceExpr))
	return err
}

// CreateTableAs materializes a mapped expression as a table. The name
// is validated before any SQL is issued.
func CreateTableAs(db Execer, name, sourceExpr string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	_, err := db.Exec(fmt.Sprintf(`create table "%s" as select * from %s`, name, sourceExpr))
	return err
}
