package avroschema

import (
	"errors"
	"fmt"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMalformedSchema          = "malformed_schema"
	CodeInvalidTypeName          = "invalid_type_name"
	CodeEmptyNameAndNamespace    = "empty_name_and_namespace"
	CodeDuplicateSynthesizedName = "duplicate_synthesized_name"
	CodeUndecomposableSchema     = "undecomposable_schema"
	CodeUnionMemberNotReference  = "union_member_not_reference"
	CodeUnknownSchemaReference   = "unknown_schema_reference"
	CodeMaxDepthExceeded         = "max_depth_exceeded"
)

// SchemaError is the single error shape produced by this package. Errors are
// synchronous and non-retryable: a raised error means the input schema is
// invalid, never a transient condition.
type SchemaError struct {
	Path    string // slash path to the offending node (for example: /fields/2/type)
	Code    string // one of the codes listed above
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

// AsSchemaError extracts a *SchemaError using errors.As internally.
func AsSchemaError(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func schemaErrorf(code, format string, args ...any) *SchemaError {
	return &SchemaError{Code: code, Message: fmt.Sprintf(format, args...)}
}
