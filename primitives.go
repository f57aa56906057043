package avroschema

// PrimitiveSet is the vocabulary of built-in type names. It is supplied by
// the caller (normally via DefaultPrimitives) and consulted in three places:
// strict-mode validation in the walker, the skip checks in Decompose and
// Assemble, and reference-versus-primitive disambiguation of Ref nodes.
type PrimitiveSet map[string]struct{}

// Has reports whether name is a primitive.
func (p PrimitiveSet) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// NewPrimitiveSet builds a PrimitiveSet from type names.
func NewPrimitiveSet(names ...string) PrimitiveSet {
	p := make(PrimitiveSet, len(names))
	for _, n := range names {
		p[n] = struct{}{}
	}
	return p
}

// DefaultPrimitives returns the Avro primitive type names.
func DefaultPrimitives() PrimitiveSet {
	return NewPrimitiveSet(
		"null",
		"boolean",
		"int",
		"long",
		"float",
		"double",
		"bytes",
		"string",
	)
}
