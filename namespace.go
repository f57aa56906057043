package avroschema

import "strings"

// fullnameResolver is the visitor pair that computes fully qualified names.
// It mirrors the lexical scoping of Avro namespaces with an explicit stack:
// every before pushes exactly one namespace entry (named schemas push their
// own, everything else a copy of the enclosing one) and every after pops it.
type fullnameResolver struct {
	primitives PrimitiveSet
	stack      []string
}

func (r *fullnameResolver) top() string {
	if len(r.stack) == 0 {
		return ""
	}
	return r.stack[len(r.stack)-1]
}

func (r *fullnameResolver) before(s Schema) (Schema, error) {
	enclosing := r.top()
	switch n := s.(type) {
	case *Record:
		full, ns, err := resolveName(n.Name, n.Namespace, enclosing)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Name = full
		r.stack = append(r.stack, ns)
		return &out, nil

	case *Enum:
		full, ns, err := resolveName(n.Name, n.Namespace, enclosing)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Name = full
		r.stack = append(r.stack, ns)
		return &out, nil

	case *Fixed:
		full, ns, err := resolveName(n.Name, n.Namespace, enclosing)
		if err != nil {
			return nil, err
		}
		out := *n
		out.Name = full
		r.stack = append(r.stack, ns)
		return &out, nil

	case Ref:
		// references do not open a namespace scope
		r.stack = append(r.stack, enclosing)
		if r.primitives.Has(string(n)) || strings.Contains(string(n), ".") {
			return n, nil
		}
		full, err := fullname(enclosing, string(n))
		if err != nil {
			return nil, err
		}
		return Ref(full), nil

	default:
		r.stack = append(r.stack, enclosing)
		return s, nil
	}
}

func (r *fullnameResolver) after(s Schema) (Schema, error) {
	r.stack = r.stack[:len(r.stack)-1]
	return s, nil
}

// resolveName resolves a name attribute to a fullname. A namespace implied by
// a dotted name wins over an explicit namespace attribute, which wins over
// the enclosing namespace.
func resolveName(name, explicit, enclosing string) (full string, ns string, err error) {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name, name[:i], nil
	}
	ns = explicit
	if ns == "" {
		ns = enclosing
	}
	full, err = fullname(ns, name)
	return full, ns, err
}

func fullname(ns, name string) (string, error) {
	if name == "" {
		return "", schemaErrorf(CodeEmptyNameAndNamespace, "namespace and name cannot both be empty")
	}
	if ns == "" {
		return name, nil
	}
	return ns + "." + name, nil
}
