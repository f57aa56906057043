package avroschema

// Kind identifies a schema node variant.
type Kind int

const (
	KindRef Kind = iota
	KindRecord
	KindEnum
	KindFixed
	KindArray
	KindMap
	KindUnion
	KindLogical
	KindWrapper
)

// Schema is a node in an Avro schema tree. The set of implementations is
// closed: Ref, *Record, *Enum, *Fixed, *Array, *Map, Union, *Logical and
// *Wrapper. Visitors switch exhaustively over these.
type Schema interface {
	Kind() Kind
}

// Ref is a bare type name: either a primitive or a reference to a named type.
// The two are distinguished only by membership in the PrimitiveSet in effect.
// A Ref is terminal for recursion, which is what keeps walks over recursive
// type graphs finite.
type Ref string

func (Ref) Kind() Kind { return KindRef }

// Attr is a single extra attribute carried by a schema node.
type Attr struct {
	Name  string
	Value any
}

// Attrs is an ordered list of extra attributes. Order is preserved through
// transformations and drives the deterministic JSON encoding.
type Attrs []Attr

// Get returns the value for name and whether it was present.
func (a Attrs) Get(name string) (any, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return nil, false
}

// Clone returns a copy safe to reorder or rewrite.
func (a Attrs) Clone() Attrs {
	if len(a) == 0 {
		return nil
	}
	out := make(Attrs, len(a))
	copy(out, a)
	return out
}

// Field is one record field. Its Type is a type position; everything else on
// the field passes through transformations untouched.
type Field struct {
	Name  string
	Type  Schema
	Attrs Attrs
}

// Record is a named schema with ordered fields.
type Record struct {
	Name      string // bare name until resolved, fullname afterwards
	Namespace string // empty means "inherit the enclosing namespace"
	Fields    []Field
	Attrs     Attrs
}

func (*Record) Kind() Kind { return KindRecord }

// Enum is a named schema with ordered symbols. Terminal: symbols are not
// type positions.
type Enum struct {
	Name      string
	Namespace string
	Symbols   []string
	Attrs     Attrs
}

func (*Enum) Kind() Kind { return KindEnum }

// Fixed is a named schema of a fixed byte size. Size stays in its decoded
// form (number or numeric string) until canonicalization coerces it.
type Fixed struct {
	Name      string
	Namespace string
	Size      any
	Attrs     Attrs
}

func (*Fixed) Kind() Kind { return KindFixed }

// Array has a single item type position.
type Array struct {
	Items Schema
	Attrs Attrs
}

func (*Array) Kind() Kind { return KindArray }

// Map has a single value type position.
type Map struct {
	Values Schema
	Attrs  Attrs
}

func (*Map) Kind() Kind { return KindMap }

// Union is a bare ordered sequence of alternatives; there is no wrapping
// node, mirroring the JSON form.
type Union []Schema

func (Union) Kind() Kind { return KindUnion }

// Logical wraps a base type with a logicalType annotation plus any extra
// normalization attributes (precision, scale, ...).
type Logical struct {
	Type        Schema
	LogicalType string
	Attrs       Attrs
}

func (*Logical) Kind() Kind { return KindLogical }

// Wrapper is any other mapping keyed by "type": the single-key
// {"type": "string"} form, or an attribute-bearing extension mapping whose
// type position is itself a schema. Strict walks reject wrappers whose inner
// type is not a primitive name.
type Wrapper struct {
	Type  Schema
	Attrs Attrs
}

func (*Wrapper) Kind() Kind { return KindWrapper }

// schemaName returns the name attribute of a named schema node.
func schemaName(s Schema) (string, bool) {
	switch n := s.(type) {
	case *Record:
		return n.Name, n.Name != ""
	case *Enum:
		return n.Name, n.Name != ""
	case *Fixed:
		return n.Name, n.Name != ""
	}
	return "", false
}
