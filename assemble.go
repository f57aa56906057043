package avroschema

// AssembleOptions configures Assemble. The zero value means unknown
// references are fatal, strict mode, Avro primitives and no depth limit.
type AssembleOptions struct {
	// IgnoreUnknown records unresolvable references in MissingSchemaNames and
	// leaves them as bare reference strings instead of failing.
	IgnoreUnknown bool
	// Lenient disables strict type-name validation in the walker.
	Lenient bool
	// Primitives overrides the built-in type vocabulary. Nil means
	// DefaultPrimitives.
	Primitives PrimitiveSet
	// MaxDepth bounds schema nesting. Zero means unlimited.
	MaxDepth int
}

// Assembly reports what a call to Assemble resolved.
type Assembly struct {
	// ResolvedNamedSchemas holds the named types whose definitions were
	// inlined (each exactly once).
	ResolvedNamedSchemas map[string]struct{}
	// MissingSchemaNames holds references absent from the table, populated
	// only in IgnoreUnknown mode.
	MissingSchemaNames map[string]struct{}
}

// Assemble is the inverse of Decompose: it substitutes references with their
// definitions from the supplied table. Synthesized names are always inlined;
// a real named type is inlined only on its first resolution and stays a bare
// reference afterwards, preserving the define-once/reference-thereafter rule
// and guaranteeing termination on recursive type graphs.
func Assemble(s Schema, schemas map[string]Schema, opts AssembleOptions) (Schema, *Assembly, error) {
	prims := opts.Primitives
	if prims == nil {
		prims = DefaultPrimitives()
	}
	a := &assembler{
		schemas:       schemas,
		ignoreUnknown: opts.IgnoreUnknown,
		primitives:    prims,
		out: &Assembly{
			ResolvedNamedSchemas: map[string]struct{}{},
			MissingSchemaNames:   map[string]struct{}{},
		},
	}
	root, err := walkSchema(s, a.before, nil,
		walkConfig{strict: !opts.Lenient, primitives: prims, maxDepth: opts.MaxDepth})
	if err != nil {
		return nil, nil, err
	}
	return root, a.out, nil
}

type assembler struct {
	schemas       map[string]Schema
	ignoreUnknown bool
	primitives    PrimitiveSet
	out           *Assembly
}

// before substitutes a reference with its definition; the walker then
// recurses into the substituted subtree, resolving its references in turn.
func (a *assembler) before(s Schema) (Schema, error) {
	ref, ok := s.(Ref)
	if !ok {
		return s, nil
	}
	name := string(ref)
	if a.primitives.Has(name) {
		return s, nil
	}
	def, ok := a.schemas[name]
	if !ok {
		if !a.ignoreUnknown {
			return nil, schemaErrorf(CodeUnknownSchemaReference, "unknown schema %q", name)
		}
		a.out.MissingSchemaNames[name] = struct{}{}
		return s, nil
	}
	if IsSynthesizedName(name) {
		// anonymous sub-schemas have no reusable identity; always inline
		return def, nil
	}
	if _, seen := a.out.ResolvedNamedSchemas[name]; seen {
		// defined once already; later occurrences stay references
		return s, nil
	}
	a.out.ResolvedNamedSchemas[name] = struct{}{}
	return def, nil
}
