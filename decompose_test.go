package avroschema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	avroschema "github.com/skemaro/avroschema"
)

func mustDecompose(t *testing.T, s avroschema.Schema) (avroschema.Schema, *avroschema.Decomposition) {
	t.Helper()
	root, dec, err := avroschema.Decompose(s, avroschema.DecomposeOptions{})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	return root, dec
}

func TestDecomposePrimitiveRoot(t *testing.T) {
	root, dec := mustDecompose(t, avroschema.Ref("int"))
	if root != avroschema.Ref("int") {
		t.Fatalf("root = %v", root)
	}
	if len(dec.Schemas) != 0 || len(dec.MissingSchemaNames) != 0 {
		t.Fatalf("primitive decomposition should be empty, got %+v", dec)
	}
}

func TestDecomposeNamedSchemas(t *testing.T) {
	root, dec := mustDecompose(t, mustCanonical(t, `{
		"type": "record", "name": "rec", "namespace": "ns", "fields": [
			{"name": "a", "type": {"type": "array", "items": "int"}},
			{"name": "b", "type": ["null", "string"]},
			{"name": "c", "type": {"type": "enum", "name": "E", "symbols": ["A", "B"]}}
		]
	}`))

	if root != avroschema.Ref("ns.rec") {
		t.Fatalf("root = %v, want reference to ns.rec", root)
	}
	if _, ok := dec.Schemas["ns.rec"]; !ok {
		t.Fatalf("record missing from table: %v", keys(dec.Schemas))
	}
	if _, ok := dec.Schemas["ns.E"]; !ok {
		t.Fatalf("enum missing from table: %v", keys(dec.Schemas))
	}
	if _, ok := dec.NamedSchemas["ns.rec"]; !ok {
		t.Fatalf("NamedSchemas missing ns.rec")
	}

	// the stored record's type positions are all references now
	rec := dec.Schemas["ns.rec"].(*avroschema.Record)
	for _, f := range rec.Fields {
		if _, ok := f.Type.(avroschema.Ref); !ok {
			t.Fatalf("field %s type not reduced to a reference: %T", f.Name, f.Type)
		}
	}
	if len(dec.MissingSchemaNames) != 0 {
		t.Fatalf("nothing should be missing: %v", dec.MissingSchemaNames)
	}
}

func TestDecomposeSynthesizedPrefixes(t *testing.T) {
	cases := []struct {
		src    string
		prefix string
	}{
		{`{"type": "array", "items": "int"}`, "__array_"},
		{`{"type": "map", "values": "string"}`, "__map_"},
		{`["null", "int"]`, "__union_"},
		{`{"type": "long", "logicalType": "timestamp-millis"}`, "__logical_"},
	}
	for _, tc := range cases {
		root, dec := mustDecompose(t, mustSchema(t, tc.src))
		name, ok := root.(avroschema.Ref)
		if !ok {
			t.Fatalf("%s: root is %T, want a synthesized reference", tc.src, root)
		}
		if !strings.HasPrefix(string(name), tc.prefix) {
			t.Fatalf("%s: root %q lacks prefix %s", tc.src, name, tc.prefix)
		}
		if !avroschema.IsSynthesizedName(string(name)) {
			t.Fatalf("%s: %q not recognized as synthesized", tc.src, name)
		}
		if _, ok := dec.Schemas[string(name)]; !ok {
			t.Fatalf("%s: synthesized entry missing from table", tc.src)
		}
		if _, ok := dec.HashedSchemaNames[string(name)]; !ok {
			t.Fatalf("%s: synthesized name not recorded", tc.src)
		}
	}
}

func TestDecomposeUnionStoresTheSequence(t *testing.T) {
	root, dec := mustDecompose(t, mustSchema(t, `["null", "a.b"]`))
	stored := dec.Schemas[string(root.(avroschema.Ref))]
	want := avroschema.Union{avroschema.Ref("null"), avroschema.Ref("a.b")}
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Fatalf("stored union mismatch (-want +got):\n%s", diff)
	}
	if _, ok := dec.MissingSchemaNames["a.b"]; !ok {
		t.Fatalf("a.b is undefined here and should be reported missing: %v", dec.MissingSchemaNames)
	}
}

func TestDecomposeRecursiveRecord(t *testing.T) {
	root, dec := mustDecompose(t, mustCanonical(t, `{
		"type": "record", "name": "node", "fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "node"]}
		]
	}`))
	if root != avroschema.Ref("node") {
		t.Fatalf("root = %v", root)
	}
	if _, ok := dec.ReferencedSchemaNames["node"]; !ok {
		t.Fatalf("self reference should be confirmed, got referenced=%v missing=%v",
			dec.ReferencedSchemaNames, dec.MissingSchemaNames)
	}
	if len(dec.MissingSchemaNames) != 0 {
		t.Fatalf("nothing should be missing: %v", dec.MissingSchemaNames)
	}
}

func TestDecomposeForwardReferenceIsNotMissing(t *testing.T) {
	// "later" is referenced before its definition is walked; the final sweep
	// must reclassify it
	_, dec := mustDecompose(t, mustCanonical(t, `{
		"type": "record", "name": "top", "fields": [
			{"name": "early", "type": "later"},
			{"name": "def", "type": {"type": "record", "name": "later", "fields": []}}
		]
	}`))
	if _, ok := dec.MissingSchemaNames["later"]; ok {
		t.Fatalf("later is defined in the same schema and must not be missing")
	}
	if _, ok := dec.ReferencedSchemaNames["later"]; !ok {
		t.Fatalf("later should be confirmed referenced")
	}
}

func TestDecomposeRepeatedIdenticalSubSchema(t *testing.T) {
	// the same anonymous union twice is one table entry, not a collision
	root, dec := mustDecompose(t, mustCanonical(t, `{
		"type": "record", "name": "r", "fields": [
			{"name": "a", "type": ["null", "int"]},
			{"name": "b", "type": ["null", "int"]}
		]
	}`))
	if root != avroschema.Ref("r") {
		t.Fatalf("root = %v", root)
	}
	unions := 0
	for name := range dec.HashedSchemaNames {
		if strings.HasPrefix(name, "__union_") {
			unions++
		}
	}
	if unions != 1 {
		t.Fatalf("expected one union entry, got %d", unions)
	}
}

func TestDecomposeConflictingNamedDefinitions(t *testing.T) {
	s := mustCanonical(t, `{
		"type": "record", "name": "r", "fields": [
			{"name": "a", "type": {"type": "fixed", "name": "f", "size": 4}},
			{"name": "b", "type": {"type": "fixed", "name": "f", "size": 8}}
		]
	}`)
	_, _, err := avroschema.Decompose(s, avroschema.DecomposeOptions{})
	wantCode(t, err, avroschema.CodeDuplicateSynthesizedName)
}

func TestDecomposeRejectsPlainWrapper(t *testing.T) {
	// a mapping with neither name nor logicalType nor a synthesizable kind
	s := mustSchema(t, `{"type": "string", "doc": "annotated"}`)
	_, _, err := avroschema.Decompose(s, avroschema.DecomposeOptions{})
	wantCode(t, err, avroschema.CodeUndecomposableSchema)
}

func keys(m map[string]avroschema.Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
