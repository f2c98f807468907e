package types

import (
	"fmt"
	"strings"
)

// Struct is a STRUCT value with field order preserved. Declared field
// order matters for positional struct encodings, so a plain Go map is
// not enough.
type Struct struct {
	names  []string
	values map[string]any
}

// NewStruct creates an empty struct value.
func NewStruct() *Struct {
	return &Struct{values: make(map[string]any)}
}

// Set sets a field, appending the name to the order on first write.
func (s *Struct) Set(name string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[name]; !exists {
		s.names = append(s.names, name)
	}
	s.values[name] = value
}

// Get returns a field value.
func (s *Struct) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (s *Struct) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.names)
}

// ToMap flattens the struct to a plain Go map. Field order is lost.
func (s *Struct) ToMap() map[string]any {
	out := make(map[string]any, len(s.names))
	for _, n := range s.names {
		out[n] = s.values[n]
	}
	return out
}

// String renders the struct as {name: value, ...} in field order.
func (s *Struct) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range s.names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", n, s.values[n])
	}
	b.WriteByte('}')
	return b.String()
}
