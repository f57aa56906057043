package avroschema

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes the first document of a YAML stream into the schema value
// model. Schemas checked into YAML manifests decode to the same generic
// shapes FromAny accepts; JSON documents are valid YAML, so this also reads
// plain JSON.
func FromYAML(data []byte) (Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, schemaErrorf(CodeMalformedSchema, "empty YAML document")
		}
		return nil, schemaErrorf(CodeMalformedSchema, "invalid YAML: %v", err)
	}
	return FromAny(v)
}
