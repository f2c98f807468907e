// Package schema describes result-set columns: the logical type a
// column was declared with, the physical encoding the engine delivers
// it in, and the metadata needed to coerce raw values into canonical
// Go values.
package schema

import (
	"strconv"
	"strings"
)

// LogicalType is the semantic type tag of a column, as opposed to the
// physical encoding of its values.
type LogicalType int

const (
	TypeUnknown LogicalType = iota
	TypeBoolean
	TypeNumeric
	TypeText
	TypeDate
	TypeTime
	TypeTimestamp
	TypeTimestampTZ
	TypeInterval
	TypeStruct
	TypeList
	TypeMap
	TypeBinary
	TypeFixedBinary
	TypeDecimal
	TypeUUID
)

// String returns the SQL-ish name of the logical type
func (t LogicalType) String() string {
	switch t {
	case TypeBoolean:
		return "BOOLEAN"
	case TypeNumeric:
		return "NUMERIC"
	case TypeText:
		return "VARCHAR"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeTimestampTZ:
		return "TIMESTAMPTZ"
	case TypeInterval:
		return "INTERVAL"
	case TypeStruct:
		return "STRUCT"
	case TypeList:
		return "LIST"
	case TypeMap:
		return "MAP"
	case TypeBinary:
		return "BLOB"
	case TypeFixedBinary:
		return "BIT"
	case TypeDecimal:
		return "DECIMAL"
	case TypeUUID:
		return "UUID"
	default:
		return "UNKNOWN"
	}
}

// PhysicalEncoding is the wire representation the engine uses for a
// column's values.
type PhysicalEncoding int

const (
	PhysicalDefault PhysicalEncoding = iota
	// PhysicalVarBinary - variable-length byte sequences
	PhysicalVarBinary
	// PhysicalFixedBinary - fixed-width byte sequences
	PhysicalFixedBinary
)

// Metadata is the canonical per-field metadata schema. It is populated
// once at FieldDescriptor construction from whatever raw keys the
// engine supplies; consumers never probe raw key names themselves.
type Metadata struct {
	// SourceType is the engine's declared type name, e.g. "BIT(6)".
	SourceType string
	// DeclaredWidth is the declared bit-width, 0 when absent.
	DeclaredWidth int
	// SubUnit qualifies two-value interval encodings, e.g.
	// "YEAR_MONTH" or "DAY_TIME".
	SubUnit string
}

// Raw metadata keys historically emitted by the execution layer. Only
// NewMetadata looks at these.
const (
	rawKeySourceType    = "source_type"
	rawKeyDatabaseType  = "database_type_name"
	rawKeyDeclaredWidth = "declared_width"
	rawKeySubUnit       = "interval_unit"
)

// NewMetadata folds a raw key/value mapping into the canonical schema.
// Unknown keys are ignored.
func NewMetadata(raw map[string]string) Metadata {
	var m Metadata
	if raw == nil {
		return m
	}
	if v, ok := raw[rawKeySourceType]; ok {
		m.SourceType = v
	} else if v, ok := raw[rawKeyDatabaseType]; ok {
		m.SourceType = v
	}
	if v, ok := raw[rawKeyDeclaredWidth]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			m.DeclaredWidth = n
		}
	}
	if v, ok := raw[rawKeySubUnit]; ok {
		m.SubUnit = strings.ToUpper(v)
	}
	// A width embedded in the source type, e.g. BIT(6), fills in a
	// missing declared width.
	if m.DeclaredWidth == 0 {
		m.DeclaredWidth = widthFromSourceType(m.SourceType)
	}
	return m
}

// widthFromSourceType extracts n from a "NAME(n)" type string.
func widthFromSourceType(src string) int {
	open := strings.IndexByte(src, '(')
	end := strings.IndexByte(src, ')')
	if open < 0 || end <= open+1 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(src[open+1 : end]))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// FieldDescriptor describes one result column. Descriptors are built
// once per query and read-only afterwards.
type FieldDescriptor struct {
	Name     string
	Logical  LogicalType
	Physical PhysicalEncoding
	Meta     Metadata
	// Children carries declared sub-fields for STRUCT, the element
	// field for LIST, and key/value fields for MAP.
	Children []FieldDescriptor
}

// NewField creates a descriptor with canonicalized metadata.
func NewField(name string, logical LogicalType, raw map[string]string) FieldDescriptor {
	return FieldDescriptor{
		Name:    name,
		Logical: logical,
		Meta:    NewMetadata(raw),
	}
}

// Child returns the declared child field with the given name.
func (f FieldDescriptor) Child(name string) (FieldDescriptor, bool) {
	for _, c := range f.Children {
		if c.Name == name {
			return c, true
		}
	}
	return FieldDescriptor{}, false
}
