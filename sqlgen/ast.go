// Package sqlgen holds the query AST subset and the SQL serializer
// used when compiling generated queries, including the
// table-expression rewrite pass that substitutes mapped table names
// with raw source expressions.
package sqlgen

// Node is any element of the query tree.
type Node interface {
	node()
}

// TableRef is a reference appearing in a FROM clause.
type TableRef interface {
	Node
	tableRef()
}

// Expr is a scalar expression.
type Expr interface {
	Node
	expr()
}

// TableName references a logical table, optionally qualified and
// optionally aliased.
type TableName struct {
	Schema string
	Name   string
	Alias  string
}

func (*TableName) node()     {}
func (*TableName) tableRef() {}

// AliasedRef wraps another table reference and owns its alias; the
// wrapped reference must not emit alias text of its own.
type AliasedRef struct {
	Ref   TableRef
	Alias string
}

func (*AliasedRef) node()     {}
func (*AliasedRef) tableRef() {}

// Ident is a possibly-qualified column identifier.
type Ident struct {
	Parts []string
}

func (*Ident) node() {}
func (*Ident) expr() {}

// Star is the `*` projection.
type Star struct{}

func (*Star) node() {}
func (*Star) expr() {}

// Raw is a verbatim SQL fragment. It is emitted untouched.
type Raw struct {
	SQL string
}

func (*Raw) node() {}
func (*Raw) expr() {}

// Placeholder is one positional `?` parameter bound to a value.
type Placeholder struct {
	Value any
}

func (*Placeholder) node() {}
func (*Placeholder) expr() {}

// BinaryExpr is a two-operand expression with a textual operator.
type BinaryExpr struct {
	Left     Expr
	Operator string
	Right    Expr
}

func (*BinaryExpr) node() {}
func (*BinaryExpr) expr() {}

// SelectItem is one projected column with an optional alias.
type SelectItem struct {
	Expr  Expr
	Alias string
}

// SelectStmt is the SELECT shape the compiler emits.
type SelectStmt struct {
	Items   []SelectItem
	From    []TableRef
	Where   Expr
	OrderBy []OrderItem
	Limit   *int64
}

func (*SelectStmt) node() {}

// OrderItem is one ORDER BY term.
type OrderItem struct {
	Expr Expr
	Desc bool
}
