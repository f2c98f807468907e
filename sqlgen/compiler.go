package sqlgen

import (
	"fmt"
	"strconv"
	"strings"
)

// TableMapping resolves a logical table name to a raw SQL source
// expression. Implementations must be immutable: the compiler shares
// one mapping across concurrent compilations without locking.
type TableMapping interface {
	Expr(name string) (string, bool)
}

// Compiled is the serialized form of a statement: SQL text with `?`
// placeholders and the bound arguments in order.
type Compiled struct {
	SQL  string
	Args []any
}

// Compiler serializes query trees to SQL. The zero value compiles
// with default identifier quoting and no table mapping.
type Compiler struct {
	mapping TableMapping
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithTableMapping installs the logical-name-to-expression mapping
// consulted for every table reference.
func WithTableMapping(m TableMapping) Option {
	return func(c *Compiler) { c.mapping = m }
}

// NewCompiler creates a compiler. The mapping, when given, is read
// for the compiler's whole lifetime and never mutated.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile serializes a statement.
func (c *Compiler) Compile(stmt *SelectStmt) (Compiled, error) {
	w := &writer{}
	if err := c.compileSelect(w, stmt); err != nil {
		return Compiled{}, err
	}
	return Compiled{SQL: w.sb.String(), Args: w.args}, nil
}

type writer struct {
	sb   strings.Builder
	args []any
}

func (c *Compiler) compileSelect(w *writer, stmt *SelectStmt) error {
	w.sb.WriteString("select ")
	if len(stmt.Items) == 0 {
		w.sb.WriteByte('*')
	}
	for i, item := range stmt.Items {
		if i > 0 {
			w.sb.WriteString(", ")
		}
		if err := c.compileExpr(w, item.Expr); err != nil {
			return err
		}
		if item.Alias != "" {
			w.sb.WriteString(" as ")
			w.sb.WriteString(QuoteIdentifier(item.Alias))
		}
	}
	if len(stmt.From) > 0 {
		w.sb.WriteString(" from ")
		for i, ref := range stmt.From {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			if err := c.compileTableRef(w, ref, false); err != nil {
				return err
			}
		}
	}
	if stmt.Where != nil {
		w.sb.WriteString(" where ")
		if err := c.compileExpr(w, stmt.Where); err != nil {
			return err
		}
	}
	if len(stmt.OrderBy) > 0 {
		w.sb.WriteString(" order by ")
		for i, item := range stmt.OrderBy {
			if i > 0 {
				w.sb.WriteString(", ")
			}
			if err := c.compileExpr(w, item.Expr); err != nil {
				return err
			}
			if item.Desc {
				w.sb.WriteString(" desc")
			}
		}
	}
	if stmt.Limit != nil {
		w.sb.WriteString(" limit ")
		w.sb.WriteString(strconv.FormatInt(*stmt.Limit, 10))
	}
	return nil
}

// compileTableRef emits one FROM-clause reference. aliasOwned tells a
// reference that an enclosing wrapper already emits its alias, so it
// must not emit alias text itself.
func (c *Compiler) compileTableRef(w *writer, ref TableRef, aliasOwned bool) error {
	switch t := ref.(type) {
	case *AliasedRef:
		if err := c.compileTableRef(w, t.Ref, true); err != nil {
			return err
		}
		w.sb.WriteString(" as ")
		w.sb.WriteString(QuoteIdentifier(t.Alias))
		return nil
	case *TableName:
		c.compileTableName(w, t, aliasOwned)
		return nil
	default:
		return fmt.Errorf("unsupported table reference %T", ref)
	}
}

// compileTableName is the rewrite point: a mapped logical name is
// replaced by its raw source expression verbatim; an unmapped one
// gets default identifier quoting. Mapping never removes an alias the
// query specified, it only changes what the alias binds to.
func (c *Compiler) compileTableName(w *writer, t *TableName, aliasOwned bool) {
	if c.mapping != nil {
		if expr, ok := c.mapping.Expr(t.Name); ok {
			// The mapped text is itself SQL, so no quoting.
			w.sb.WriteString(expr)
			if t.Alias != "" && !aliasOwned {
				w.sb.WriteString(" as ")
				w.sb.WriteString(QuoteIdentifier(t.Alias))
			}
			return
		}
	}
	if t.Schema != "" {
		w.sb.WriteString(QuoteIdentifier(t.Schema))
		w.sb.WriteByte('.')
	}
	w.sb.WriteString(QuoteIdentifier(t.Name))
	if t.Alias != "" && !aliasOwned {
		w.sb.WriteString(" as ")
		w.sb.WriteString(QuoteIdentifier(t.Alias))
	}
}

func (c *Compiler) compileExpr(w *writer, e Expr) error {
	switch x := e.(type) {
	case *Star:
		w.sb.WriteByte('*')
	case *Ident:
		for i, part := range x.Parts {
			if i > 0 {
				w.sb.WriteByte('.')
			}
			w.sb.WriteString(QuoteIdentifier(part))
		}
	case *Raw:
		w.sb.WriteString(x.SQL)
	case *Placeholder:
		w.sb.WriteByte('?')
		w.args = append(w.args, x.Value)
	case *BinaryExpr:
		if err := c.compileExpr(w, x.Left); err != nil {
			return err
		}
		w.sb.WriteByte(' ')
		w.sb.WriteString(x.Operator)
		w.sb.WriteByte(' ')
		return c.compileExpr(w, x.Right)
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
	return nil
}

// QuoteIdentifier wraps an identifier in double quotes, doubling any
// embedded double quote.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
