package avroschema

import (
	"sort"
	"strconv"
	"strings"
)

// CanonicalizeOptions configures Canonicalize. The zero value means strict
// mode, Avro primitives, full attribute reduction and no depth limit.
type CanonicalizeOptions struct {
	// KeepLogicalTypes retains logicalType wrappers, reordered as type,
	// logicalType, then the remaining attributes sorted lexicographically.
	// When false a logicalType wrapper collapses to its bare base type.
	KeepLogicalTypes bool
	// KeepAttributes skips the canonical attribute reduction entirely and
	// only resolves names (and normalizes string/size literals).
	KeepAttributes bool
	// Lenient disables strict type-name validation in the walker.
	Lenient bool
	// Primitives overrides the built-in type vocabulary. Nil means
	// DefaultPrimitives.
	Primitives PrimitiveSet
	// MaxDepth bounds schema nesting. Zero means unlimited.
	MaxDepth int
}

// Canonicalize reduces a schema to its parsing canonical form: fullnames
// resolved and substituted, non-canonical attributes dropped, literals
// normalized and single-key type wrappers unwrapped. The result is a
// deterministic function of the schema's logical content; two schemas equal
// in canonical form hash identically.
//
// Canonicalize is idempotent: applying it to its own output is a no-op.
func Canonicalize(s Schema, opts CanonicalizeOptions) (Schema, error) {
	prims := opts.Primitives
	if prims == nil {
		prims = DefaultPrimitives()
	}
	resolver := &fullnameResolver{primitives: prims}
	reducer := attributeReducer{keepLogicalTypes: opts.KeepLogicalTypes}

	before := []Hook{resolver.before}
	if !opts.KeepAttributes {
		before = append(before, reducer.before)
	}
	before = append(before, normalizeStrings, coerceFixedSize)

	return walkSchema(s,
		chainHooks(before...),
		chainHooks(resolver.after, simplify),
		walkConfig{strict: !opts.Lenient, primitives: prims, maxDepth: opts.MaxDepth},
	)
}

// attributeReducer enforces the canonical attribute set. It holds no state
// beyond the keepLogicalTypes flag; each node is reduced independently.
type attributeReducer struct {
	keepLogicalTypes bool
}

func (r attributeReducer) before(s Schema) (Schema, error) {
	switch n := s.(type) {
	case *Logical:
		if !r.keepLogicalTypes {
			return &Wrapper{Type: n.Type}, nil
		}
		out := *n
		out.Attrs = n.Attrs.Clone()
		sort.SliceStable(out.Attrs, func(i, j int) bool {
			return out.Attrs[i].Name < out.Attrs[j].Name
		})
		return &out, nil
	case *Record:
		// the name is a fullname by now; the namespace attribute is not canonical
		return &Record{Name: n.Name, Fields: n.Fields}, nil
	case *Enum:
		return &Enum{Name: n.Name, Symbols: n.Symbols}, nil
	case *Fixed:
		return &Fixed{Name: n.Name, Size: n.Size}, nil
	case *Array:
		return &Array{Items: n.Items}, nil
	case *Map:
		return &Map{Values: n.Values}, nil
	case *Wrapper:
		return &Wrapper{Type: n.Type}, nil
	default:
		return s, nil
	}
}

// simplify unwraps a mapping that carries nothing but a type key into its
// bare inner value.
func simplify(s Schema) (Schema, error) {
	if w, ok := s.(*Wrapper); ok && len(w.Attrs) == 0 {
		return w.Type, nil
	}
	return s, nil
}

// normalizeStrings re-encodes the direct string attributes of a node so that
// equivalent inputs collapse to a single valid UTF-8 representation.
func normalizeStrings(s Schema) (Schema, error) {
	switch n := s.(type) {
	case Ref:
		return Ref(validUTF8(string(n))), nil
	case *Record:
		out := *n
		out.Name = validUTF8(n.Name)
		out.Namespace = validUTF8(n.Namespace)
		out.Attrs = normalizeAttrStrings(n.Attrs)
		return &out, nil
	case *Enum:
		out := *n
		out.Name = validUTF8(n.Name)
		out.Namespace = validUTF8(n.Namespace)
		out.Attrs = normalizeAttrStrings(n.Attrs)
		return &out, nil
	case *Fixed:
		out := *n
		out.Name = validUTF8(n.Name)
		out.Namespace = validUTF8(n.Namespace)
		out.Attrs = normalizeAttrStrings(n.Attrs)
		return &out, nil
	case *Logical:
		out := *n
		out.LogicalType = validUTF8(n.LogicalType)
		out.Attrs = normalizeAttrStrings(n.Attrs)
		return &out, nil
	default:
		return s, nil
	}
}

func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

func normalizeAttrStrings(a Attrs) Attrs {
	if len(a) == 0 {
		return a
	}
	out := a.Clone()
	for i := range out {
		if v, ok := out[i].Value.(string); ok {
			out[i].Value = validUTF8(v)
		}
	}
	return out
}

// coerceFixedSize forces the size attribute of a fixed schema to an integer,
// accepting equivalent numeric-string forms.
func coerceFixedSize(s Schema) (Schema, error) {
	n, ok := s.(*Fixed)
	if !ok {
		return s, nil
	}
	size, err := toInt64(n.Size)
	if err != nil {
		return nil, schemaErrorf(CodeMalformedSchema, "fixed %q has a non-integer size %v", n.Name, n.Size)
	}
	out := *n
	out.Size = size
	return &out, nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(x), 10, 64)
	default:
		return 0, schemaErrorf(CodeMalformedSchema, "not an integer: %v", v)
	}
}
