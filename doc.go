package avroschema

// Package avroschema provides structural transformations over Avro schema
// trees:
//
// - Canonicalize: reduce a schema to its parsing canonical form for
//   fingerprinting and cross-implementation comparison
// - Decompose: flatten a nested schema into a table of named sub-schemas
//   plus a root that references them
// - Assemble: resolve a reference root against such a table (the inverse of
//   Decompose)
//
// Design policy:
// - One depth-first walker (Walk) underlies all three transformations. Name
//   references are terminal for recursion; that invariant, not cycle
//   detection, is what makes recursive type graphs safe.
// - All visitor state is created per call and discarded afterwards.
//   Independent calls may run in parallel with no coordination.
// - Nodes are never mutated in place; hooks and the walker rebuild and
//   return.
// - Keep only public APIs in the root package; the CLI lives under
//   cmd/avroschema.
//
// Typical usage:
//
//	s, err := avroschema.FromJSON(data)
//	canon, err := avroschema.Canonicalize(s, avroschema.CanonicalizeOptions{})
//	fp, err := avroschema.Hash(canon)
//
//	root, dec, err := avroschema.Decompose(canon, avroschema.DecomposeOptions{})
//	back, _, err := avroschema.Assemble(root, dec.Schemas, avroschema.AssembleOptions{})
