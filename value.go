package avroschema

import "sort"

// FromAny converts a generic decoded schema document (mappings as
// map[string]any, ordered sequences as []any, and strings) into the schema
// value model. Extra attributes are stored in sorted key order so the
// conversion is deterministic regardless of map iteration order.
func FromAny(v any) (Schema, error) {
	switch x := v.(type) {
	case string:
		return Ref(x), nil
	case []any:
		u := make(Union, len(x))
		for i, m := range x {
			s, err := FromAny(m)
			if err != nil {
				return nil, err
			}
			u[i] = s
		}
		return u, nil
	case map[string]any:
		return mappingFromAny(x)
	case Schema:
		return x, nil
	default:
		return nil, schemaErrorf(CodeMalformedSchema, "unsupported schema value %T", v)
	}
}

// ToAny converts a schema value back into generic JSON-shaped values. Key
// order is not represented in Go maps; use ToJSON when the ordered textual
// form matters.
func ToAny(s Schema) any {
	switch n := s.(type) {
	case Ref:
		return string(n)
	case Union:
		out := make([]any, len(n))
		for i, m := range n {
			out[i] = ToAny(m)
		}
		return out
	case *Record:
		m := map[string]any{"type": "record", "name": n.Name}
		if n.Namespace != "" {
			m["namespace"] = n.Namespace
		}
		fields := make([]any, len(n.Fields))
		for i, f := range n.Fields {
			fm := map[string]any{"name": f.Name, "type": ToAny(f.Type)}
			for _, at := range f.Attrs {
				fm[at.Name] = at.Value
			}
			fields[i] = fm
		}
		m["fields"] = fields
		return withAttrs(m, n.Attrs)
	case *Enum:
		m := map[string]any{"type": "enum", "name": n.Name, "symbols": n.Symbols}
		if n.Namespace != "" {
			m["namespace"] = n.Namespace
		}
		return withAttrs(m, n.Attrs)
	case *Fixed:
		m := map[string]any{"type": "fixed", "name": n.Name, "size": n.Size}
		if n.Namespace != "" {
			m["namespace"] = n.Namespace
		}
		return withAttrs(m, n.Attrs)
	case *Array:
		return withAttrs(map[string]any{"type": "array", "items": ToAny(n.Items)}, n.Attrs)
	case *Map:
		return withAttrs(map[string]any{"type": "map", "values": ToAny(n.Values)}, n.Attrs)
	case *Logical:
		return withAttrs(map[string]any{"type": ToAny(n.Type), "logicalType": n.LogicalType}, n.Attrs)
	case *Wrapper:
		return withAttrs(map[string]any{"type": ToAny(n.Type)}, n.Attrs)
	default:
		return nil
	}
}

func withAttrs(m map[string]any, attrs Attrs) map[string]any {
	for _, at := range attrs {
		m[at.Name] = at.Value
	}
	return m
}

func mappingFromAny(m map[string]any) (Schema, error) {
	tv, ok := m["type"]
	if !ok {
		return nil, schemaErrorf(CodeMalformedSchema, "mapping schema has no type key")
	}

	if ts, ok := tv.(string); ok {
		switch ts {
		case "record":
			fields, err := fieldsFromAny(m["fields"])
			if err != nil {
				return nil, err
			}
			name, namespace := nameFromAny(m)
			return &Record{
				Name:      name,
				Namespace: namespace,
				Fields:    fields,
				Attrs:     extraAttrs(m, "type", "name", "namespace", "fields"),
			}, nil
		case "enum":
			symbols, err := symbolsFromAny(m["symbols"])
			if err != nil {
				return nil, err
			}
			name, namespace := nameFromAny(m)
			return &Enum{
				Name:      name,
				Namespace: namespace,
				Symbols:   symbols,
				Attrs:     extraAttrs(m, "type", "name", "namespace", "symbols"),
			}, nil
		case "fixed":
			name, namespace := nameFromAny(m)
			return &Fixed{
				Name:      name,
				Namespace: namespace,
				Size:      m["size"],
				Attrs:     extraAttrs(m, "type", "name", "namespace", "size"),
			}, nil
		case "array":
			items, err := FromAny(m["items"])
			if err != nil {
				return nil, err
			}
			return &Array{Items: items, Attrs: extraAttrs(m, "type", "items")}, nil
		case "map":
			values, err := FromAny(m["values"])
			if err != nil {
				return nil, err
			}
			return &Map{Values: values, Attrs: extraAttrs(m, "type", "values")}, nil
		}
		// any other string denotes a type in its own right
		return wrapperFromAny(Ref(ts), m)
	}

	// a nested mapping or sequence in the type position
	inner, err := FromAny(tv)
	if err != nil {
		return nil, err
	}
	return wrapperFromAny(inner, m)
}

func wrapperFromAny(inner Schema, m map[string]any) (Schema, error) {
	if lt, ok := m["logicalType"]; ok {
		name, ok := lt.(string)
		if !ok {
			return nil, schemaErrorf(CodeMalformedSchema, "logicalType must be a string, got %T", lt)
		}
		return &Logical{
			Type:        inner,
			LogicalType: name,
			Attrs:       extraAttrs(m, "type", "logicalType"),
		}, nil
	}
	return &Wrapper{Type: inner, Attrs: extraAttrs(m, "type")}, nil
}

func nameFromAny(m map[string]any) (name, namespace string) {
	name, _ = m["name"].(string)
	namespace, _ = m["namespace"].(string)
	return name, namespace
}

func fieldsFromAny(v any) ([]Field, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, schemaErrorf(CodeMalformedSchema, "record fields must be a sequence, got %T", v)
	}
	fields := make([]Field, 0, len(items))
	for _, fv := range items {
		fm, ok := fv.(map[string]any)
		if !ok {
			return nil, schemaErrorf(CodeMalformedSchema, "record field must be a mapping, got %T", fv)
		}
		ft, ok := fm["type"]
		if !ok {
			return nil, schemaErrorf(CodeMalformedSchema, "record field %v has no type", fm["name"])
		}
		t, err := FromAny(ft)
		if err != nil {
			return nil, err
		}
		name, _ := fm["name"].(string)
		fields = append(fields, Field{Name: name, Type: t, Attrs: extraAttrs(fm, "name", "type")})
	}
	return fields, nil
}

func symbolsFromAny(v any) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case []any:
		out := make([]string, len(x))
		for i, sv := range x {
			s, ok := sv.(string)
			if !ok {
				return nil, schemaErrorf(CodeMalformedSchema, "enum symbol must be a string, got %T", sv)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, schemaErrorf(CodeMalformedSchema, "enum symbols must be a sequence, got %T", v)
	}
}

// extraAttrs collects every key outside the consumed set, sorted for
// determinism.
func extraAttrs(m map[string]any, consumed ...string) Attrs {
	keys := make([]string, 0, len(m))
outer:
	for k := range m {
		for _, c := range consumed {
			if k == c {
				continue outer
			}
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	attrs := make(Attrs, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, Attr{Name: k, Value: m[k]})
	}
	return attrs
}
