package avroschema

import (
	"errors"
	"strconv"
	"strings"
)

// Hook rewrites a single node. The returned schema replaces the node for the
// rest of the walk; it may change the node's shape entirely (for example a
// mapping into a bare Ref).
type Hook func(Schema) (Schema, error)

// WalkOptions configures a Walk.
type WalkOptions struct {
	// Lenient disables strict type-name validation: wrappers whose inner type
	// is not a primitive name, or is itself a nested schema, are recursed into
	// instead of rejected.
	Lenient bool
	// Primitives overrides the built-in type vocabulary. Nil means
	// DefaultPrimitives.
	Primitives PrimitiveSet
	// MaxDepth bounds schema nesting. Zero means unlimited.
	MaxDepth int
}

// Walk performs a depth-first traversal of s, calling before on each node
// pre-order and after post-order. Recursion descends into exactly the type
// positions of the tree: record field types, array items, map values, union
// members and the inner type of Logical/Wrapper nodes. Enum, Fixed and Ref
// are terminal; in particular a name reference is never expanded, which is
// the invariant that makes recursive type graphs safe to walk.
func Walk(s Schema, before, after Hook, opts WalkOptions) (Schema, error) {
	return walkSchema(s, before, after, walkConfig{
		strict:     !opts.Lenient,
		primitives: opts.Primitives,
		maxDepth:   opts.MaxDepth,
	})
}

type walkConfig struct {
	strict     bool
	primitives PrimitiveSet
	maxDepth   int
}

func walkSchema(s Schema, before, after Hook, cfg walkConfig) (Schema, error) {
	if cfg.primitives == nil {
		cfg.primitives = DefaultPrimitives()
	}
	w := &walker{before: before, after: after, cfg: cfg}
	return w.walk(s)
}

type walker struct {
	before Hook
	after  Hook
	cfg    walkConfig
	path   []string
	depth  int
}

func (w *walker) walk(s Schema) (Schema, error) {
	w.depth++
	defer func() { w.depth-- }()
	if w.cfg.maxDepth > 0 && w.depth > w.cfg.maxDepth {
		return nil, w.errf(CodeMaxDepthExceeded, "schema nesting exceeds %d levels", w.cfg.maxDepth)
	}
	if s == nil {
		return nil, w.errf(CodeMalformedSchema, "nil schema node")
	}

	s, err := w.apply(w.before, s)
	if err != nil {
		return nil, err
	}

	switch n := s.(type) {
	case Ref:
		// terminal: a primitive name or a reference to a named type

	case *Record:
		out := *n
		out.Fields = make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			w.push("fields/" + strconv.Itoa(i) + "/type")
			t, err := w.walk(f.Type)
			w.pop()
			if err != nil {
				return nil, err
			}
			f.Type = t
			out.Fields[i] = f
		}
		s = &out

	case *Enum, *Fixed:
		// terminal: symbols and size are attributes, not type positions

	case *Array:
		out := *n
		w.push("items")
		items, err := w.walk(n.Items)
		w.pop()
		if err != nil {
			return nil, err
		}
		out.Items = items
		s = &out

	case *Map:
		out := *n
		w.push("values")
		values, err := w.walk(n.Values)
		w.pop()
		if err != nil {
			return nil, err
		}
		out.Values = values
		s = &out

	case Union:
		out := make(Union, len(n))
		for i, m := range n {
			w.push(strconv.Itoa(i))
			t, err := w.walk(m)
			w.pop()
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		s = out

	case *Logical:
		t, err := w.walkInner(n.Type)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type = t
		s = &out

	case *Wrapper:
		t, err := w.walkInner(n.Type)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Type = t
		s = &out

	default:
		return nil, w.errf(CodeMalformedSchema, "unsupported schema node %T", s)
	}

	return w.apply(w.after, s)
}

// walkInner handles the type position of Logical and Wrapper nodes. Strict
// walks only accept a primitive name there; anything else has to be opted
// into with Lenient.
func (w *walker) walkInner(t Schema) (Schema, error) {
	if w.cfg.strict {
		r, ok := t.(Ref)
		if !ok || !w.cfg.primitives.Has(string(r)) {
			return nil, w.errf(CodeInvalidTypeName,
				"in a mapping with a type key, the type value must be a primitive name or one of record, array, map, enum, fixed")
		}
	}
	w.push("type")
	defer w.pop()
	return w.walk(t)
}

func (w *walker) apply(h Hook, s Schema) (Schema, error) {
	if h == nil {
		return s, nil
	}
	out, err := h(s)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) && se.Path == "" {
			se.Path = w.pathString()
		}
		return nil, err
	}
	return out, nil
}

func (w *walker) push(seg string) { w.path = append(w.path, seg) }
func (w *walker) pop()            { w.path = w.path[:len(w.path)-1] }

func (w *walker) pathString() string {
	if len(w.path) == 0 {
		return "/"
	}
	return "/" + strings.Join(w.path, "/")
}

func (w *walker) errf(code, format string, args ...any) *SchemaError {
	err := schemaErrorf(code, format, args...)
	err.Path = w.pathString()
	return err
}

// chainHooks composes hooks left to right, skipping nils.
func chainHooks(hooks ...Hook) Hook {
	return func(s Schema) (Schema, error) {
		var err error
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if s, err = h(s); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
}
