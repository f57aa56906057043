package avroschema

import (
	"bytes"

	j "github.com/goccy/go-json"
)

// ToJSON renders a schema as compact, whitespace-free JSON with a
// deterministic key order: name, type, namespace (when set), the canonical
// child attribute (fields/symbols/items/values/size), then extra attributes
// in stored order. This is the byte form the schema hash is computed over,
// and for canonicalized schemas it is the parsing-canonical-form text.
func ToJSON(s Schema) ([]byte, error) {
	var b bytes.Buffer
	if err := writeJSON(&b, s); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// FromJSON decodes a JSON schema document into the schema value model.
func FromJSON(data []byte) (Schema, error) {
	var v any
	if err := j.Unmarshal(data, &v); err != nil {
		return nil, schemaErrorf(CodeMalformedSchema, "invalid JSON: %v", err)
	}
	return FromAny(v)
}

func writeJSON(b *bytes.Buffer, s Schema) error {
	switch n := s.(type) {
	case Ref:
		return writeValue(b, string(n))

	case Union:
		b.WriteByte('[')
		for i, m := range n {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, m); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil

	case *Record:
		o := object{b: b}
		o.key("name")
		if err := writeValue(b, n.Name); err != nil {
			return err
		}
		o.key("type")
		b.WriteString(`"record"`)
		if n.Namespace != "" {
			o.key("namespace")
			if err := writeValue(b, n.Namespace); err != nil {
				return err
			}
		}
		o.key("fields")
		b.WriteByte('[')
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			fo := object{b: b}
			fo.key("name")
			if err := writeValue(b, f.Name); err != nil {
				return err
			}
			fo.key("type")
			if err := writeJSON(b, f.Type); err != nil {
				return err
			}
			if err := fo.attrs(f.Attrs); err != nil {
				return err
			}
			fo.close()
		}
		b.WriteByte(']')
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Enum:
		o := object{b: b}
		o.key("name")
		if err := writeValue(b, n.Name); err != nil {
			return err
		}
		o.key("type")
		b.WriteString(`"enum"`)
		if n.Namespace != "" {
			o.key("namespace")
			if err := writeValue(b, n.Namespace); err != nil {
				return err
			}
		}
		o.key("symbols")
		if err := writeValue(b, n.Symbols); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Fixed:
		o := object{b: b}
		o.key("name")
		if err := writeValue(b, n.Name); err != nil {
			return err
		}
		o.key("type")
		b.WriteString(`"fixed"`)
		if n.Namespace != "" {
			o.key("namespace")
			if err := writeValue(b, n.Namespace); err != nil {
				return err
			}
		}
		o.key("size")
		if err := writeValue(b, n.Size); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Array:
		o := object{b: b}
		o.key("type")
		b.WriteString(`"array"`)
		o.key("items")
		if err := writeJSON(b, n.Items); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Map:
		o := object{b: b}
		o.key("type")
		b.WriteString(`"map"`)
		o.key("values")
		if err := writeJSON(b, n.Values); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Logical:
		o := object{b: b}
		o.key("type")
		if err := writeJSON(b, n.Type); err != nil {
			return err
		}
		o.key("logicalType")
		if err := writeValue(b, n.LogicalType); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case *Wrapper:
		o := object{b: b}
		o.key("type")
		if err := writeJSON(b, n.Type); err != nil {
			return err
		}
		if err := o.attrs(n.Attrs); err != nil {
			return err
		}
		o.close()
		return nil

	case nil:
		return schemaErrorf(CodeMalformedSchema, "nil schema node")
	default:
		return schemaErrorf(CodeMalformedSchema, "unsupported schema node %T", s)
	}
}

// object tracks comma placement while emitting a JSON object.
type object struct {
	b *bytes.Buffer
	n int
}

func (o *object) key(k string) {
	if o.n == 0 {
		o.b.WriteByte('{')
	} else {
		o.b.WriteByte(',')
	}
	o.n++
	o.b.WriteByte('"')
	o.b.WriteString(k)
	o.b.WriteString(`":`)
}

func (o *object) attrs(attrs Attrs) error {
	for _, at := range attrs {
		data, err := j.Marshal(at.Name)
		if err != nil {
			return err
		}
		if o.n == 0 {
			o.b.WriteByte('{')
		} else {
			o.b.WriteByte(',')
		}
		o.n++
		o.b.Write(data)
		o.b.WriteByte(':')
		if s, ok := at.Value.(Schema); ok {
			if err := writeJSON(o.b, s); err != nil {
				return err
			}
			continue
		}
		if err := writeValue(o.b, at.Value); err != nil {
			return err
		}
	}
	return nil
}

func (o *object) close() {
	if o.n == 0 {
		o.b.WriteByte('{')
	}
	o.b.WriteByte('}')
}

// writeValue marshals a leaf value (string, number, bool, or any generic
// attribute payload). Maps marshal with sorted keys, so attribute payloads
// stay deterministic too.
func writeValue(b *bytes.Buffer, v any) error {
	data, err := j.Marshal(v)
	if err != nil {
		return schemaErrorf(CodeMalformedSchema, "unencodable attribute value: %v", err)
	}
	b.Write(data)
	return nil
}
