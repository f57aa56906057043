package avroschema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	avroschema "github.com/skemaro/avroschema"
)

func TestWalkVisitsTypePositionsInOrder(t *testing.T) {
	s := mustSchema(t, `{
		"type": "record", "name": "r", "fields": [
			{"name": "a", "type": {"type": "array", "items": "int"}},
			{"name": "b", "type": ["null", "string"]},
			{"name": "c", "type": {"type": "enum", "name": "e", "symbols": ["X"]}}
		]
	}`)

	var before, after []avroschema.Kind
	_, err := avroschema.Walk(s,
		func(n avroschema.Schema) (avroschema.Schema, error) {
			before = append(before, n.Kind())
			return n, nil
		},
		func(n avroschema.Schema) (avroschema.Schema, error) {
			after = append(after, n.Kind())
			return n, nil
		},
		avroschema.WalkOptions{})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	wantBefore := []avroschema.Kind{
		avroschema.KindRecord,
		avroschema.KindArray, avroschema.KindRef,
		avroschema.KindUnion, avroschema.KindRef, avroschema.KindRef,
		avroschema.KindEnum,
	}
	if diff := cmp.Diff(wantBefore, before); diff != "" {
		t.Fatalf("pre-order mismatch (-want +got):\n%s", diff)
	}
	// post-order ends at the root
	if after[len(after)-1] != avroschema.KindRecord {
		t.Fatalf("expected the record last in post-order, got %v", after)
	}
}

func TestWalkHookRewritesNodes(t *testing.T) {
	s := mustSchema(t, `{"type": "array", "items": "int"}`)
	out, err := avroschema.Walk(s,
		func(n avroschema.Schema) (avroschema.Schema, error) {
			if r, ok := n.(avroschema.Ref); ok && r == "int" {
				return avroschema.Ref("long"), nil
			}
			return n, nil
		},
		nil,
		avroschema.WalkOptions{})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if got := mustJSON(t, out); got != `{"type":"array","items":"long"}` {
		t.Fatalf("rewrite lost: %s", got)
	}
}

func TestWalkEnumAndFixedAreTerminal(t *testing.T) {
	s := mustSchema(t, `{"type": "fixed", "name": "f", "size": 4}`)
	visits := 0
	_, err := avroschema.Walk(s,
		func(n avroschema.Schema) (avroschema.Schema, error) {
			visits++
			return n, nil
		},
		nil,
		avroschema.WalkOptions{})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if visits != 1 {
		t.Fatalf("fixed must not be recursed into, got %d visits", visits)
	}
}

func TestWalkStrictRejectsUnknownTypeName(t *testing.T) {
	s := mustSchema(t, `{"type": "com.example.Custom", "doc": "extension"}`)
	_, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{})
	wantCode(t, err, avroschema.CodeInvalidTypeName)

	if _, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{Lenient: true}); err != nil {
		t.Fatalf("lenient walk should accept extension types: %v", err)
	}
}

func TestWalkStrictRejectsNestedTypeDeclaration(t *testing.T) {
	s := mustSchema(t, `{"type": {"type": "array", "items": "int"}, "doc": "nested"}`)
	_, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{})
	wantCode(t, err, avroschema.CodeInvalidTypeName)

	if _, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{Lenient: true}); err != nil {
		t.Fatalf("lenient walk should recurse into nested type declarations: %v", err)
	}
}

func TestWalkErrorCarriesPath(t *testing.T) {
	s := mustSchema(t, `{
		"type": "record", "name": "r", "fields": [
			{"name": "ok", "type": "int"},
			{"name": "bad", "type": {"type": "x.y", "doc": "d"}}
		]
	}`)
	_, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{})
	se, ok := avroschema.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Path != "/fields/1/type" {
		t.Fatalf("expected path /fields/1/type, got %q", se.Path)
	}
}

func TestWalkMaxDepth(t *testing.T) {
	s := mustSchema(t, `{"type": "array", "items": {"type": "array", "items": {"type": "array", "items": "int"}}}`)
	if _, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{MaxDepth: 10}); err != nil {
		t.Fatalf("depth 4 should fit in 10 levels: %v", err)
	}
	_, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{MaxDepth: 2})
	wantCode(t, err, avroschema.CodeMaxDepthExceeded)
}

func TestWalkNilSchema(t *testing.T) {
	_, err := avroschema.Walk(nil, nil, nil, avroschema.WalkOptions{})
	wantCode(t, err, avroschema.CodeMalformedSchema)
}

func TestWalkRecursiveReferenceTerminates(t *testing.T) {
	// a name reference is terminal, so a self-referential record walks fine
	s := mustSchema(t, `{
		"type": "record", "name": "node", "fields": [
			{"name": "next", "type": ["null", "node"]}
		]
	}`)
	if _, err := avroschema.Walk(s, nil, nil, avroschema.WalkOptions{}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
}
