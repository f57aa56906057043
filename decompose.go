package avroschema

import (
	"github.com/google/go-cmp/cmp"
)

// DecomposeOptions configures Decompose. The zero value means strict mode,
// Avro primitives and no depth limit.
type DecomposeOptions struct {
	// Lenient disables strict type-name validation in the walker.
	Lenient bool
	// Primitives overrides the built-in type vocabulary. Nil means
	// DefaultPrimitives.
	Primitives PrimitiveSet
	// MaxDepth bounds schema nesting. Zero means unlimited.
	MaxDepth int
}

// Decomposition is the flat table produced by Decompose, plus the name
// bookkeeping accumulated during the walk.
type Decomposition struct {
	// Schemas maps fullnames and synthesized names to their definitions.
	// Every definition's own type positions are reference strings.
	Schemas map[string]Schema
	// NamedSchemas holds every name seen as a name attribute during the walk.
	NamedSchemas map[string]struct{}
	// HashedSchemaNames holds the synthesized names of anonymous sub-schemas.
	HashedSchemaNames map[string]struct{}
	// ReferencedSchemaNames holds references confirmed resolvable.
	ReferencedSchemaNames map[string]struct{}
	// MissingSchemaNames holds references that never resolved within this
	// decomposition.
	MissingSchemaNames map[string]struct{}
}

// Decompose flattens a schema into a table of named and synthesized
// sub-schemas plus a root that references them. Named types are defined once
// in the table and referenced by fullname everywhere else; anonymous complex
// sub-schemas (arrays, maps, unions, logicalType wrappers) get a synthesized
// __<kind>_<digest> name. The returned root is usually a single reference
// string.
//
// Decompose normally runs on a canonicalized schema so that names in the
// table are fullnames.
func Decompose(s Schema, opts DecomposeOptions) (Schema, *Decomposition, error) {
	prims := opts.Primitives
	if prims == nil {
		prims = DefaultPrimitives()
	}
	d := &decomposer{
		primitives: prims,
		out: &Decomposition{
			Schemas:               map[string]Schema{},
			NamedSchemas:          map[string]struct{}{},
			HashedSchemaNames:     map[string]struct{}{},
			ReferencedSchemaNames: map[string]struct{}{},
			MissingSchemaNames:    map[string]struct{}{},
		},
	}
	root, err := walkSchema(s, d.before, d.after,
		walkConfig{strict: !opts.Lenient, primitives: prims, maxDepth: opts.MaxDepth})
	if err != nil {
		return nil, nil, err
	}

	// Classification during the walk is order-sensitive: a named type
	// referenced before its definition was visited looks missing. Reclassify
	// anything that turned out to be defined later in the same schema.
	for name := range d.out.MissingSchemaNames {
		_, named := d.out.NamedSchemas[name]
		_, hashed := d.out.HashedSchemaNames[name]
		if !named && !hashed {
			continue
		}
		delete(d.out.MissingSchemaNames, name)
		d.out.ReferencedSchemaNames[name] = struct{}{}
	}
	return root, d.out, nil
}

type decomposer struct {
	primitives PrimitiveSet
	out        *Decomposition
}

// before records names ahead of their subtrees so self-references inside the
// subtree resolve.
func (d *decomposer) before(s Schema) (Schema, error) {
	if name, ok := schemaName(s); ok {
		d.out.NamedSchemas[name] = struct{}{}
	}
	return s, nil
}

func (d *decomposer) after(s Schema) (Schema, error) {
	var ref Ref
	switch n := s.(type) {
	case Ref:
		ref = n

	case *Record:
		name, err := d.storeNamed(n.Name, n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)
	case *Enum:
		name, err := d.storeNamed(n.Name, n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)
	case *Fixed:
		name, err := d.storeNamed(n.Name, n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)

	case *Logical:
		name, err := d.storeHashed("logical", n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)
	case *Array:
		name, err := d.storeHashed("array", n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)
	case *Map:
		name, err := d.storeHashed("map", n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)

	case Union:
		// children were decomposed bottom-up, so members must be references
		for _, m := range n {
			if _, ok := m.(Ref); !ok {
				return nil, schemaErrorf(CodeUnionMemberNotReference,
					"union member is not a reference after decomposition: %T", m)
			}
		}
		name, err := d.storeHashed("union", n)
		if err != nil {
			return nil, err
		}
		ref = Ref(name)

	default:
		return nil, schemaErrorf(CodeUndecomposableSchema,
			"mapping schema has neither a name nor a synthesizable kind: %T", s)
	}

	if !d.primitives.Has(string(ref)) {
		name := string(ref)
		_, named := d.out.NamedSchemas[name]
		_, hashed := d.out.HashedSchemaNames[name]
		if named || hashed {
			d.out.ReferencedSchemaNames[name] = struct{}{}
		} else {
			d.out.MissingSchemaNames[name] = struct{}{}
		}
	}
	return ref, nil
}

func (d *decomposer) storeNamed(name string, s Schema) (string, error) {
	if name == "" {
		return "", schemaErrorf(CodeUndecomposableSchema, "named schema without a name")
	}
	if existing, ok := d.out.Schemas[name]; ok && !cmp.Equal(existing, s) {
		return "", schemaErrorf(CodeDuplicateSynthesizedName, "conflicting definitions for %q", name)
	}
	d.out.Schemas[name] = s
	return name, nil
}

func (d *decomposer) storeHashed(kind string, s Schema) (string, error) {
	name, err := synthesizedName(kind, s)
	if err != nil {
		return "", err
	}
	if existing, ok := d.out.Schemas[name]; ok {
		if !cmp.Equal(existing, s) {
			return "", schemaErrorf(CodeDuplicateSynthesizedName, "schema already in table: %q", name)
		}
		return name, nil
	}
	d.out.Schemas[name] = s
	d.out.HashedSchemaNames[name] = struct{}{}
	return name, nil
}
