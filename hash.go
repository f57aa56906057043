package avroschema

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// synthesizedMarker prefixes every generated name for an anonymous
// sub-schema. The assembler keys on it: synthesized definitions are always
// inlined because they have no independent reusable identity.
const synthesizedMarker = "__"

// Hash digests the compact JSON encoding of a schema and renders it as a
// fixed-length hexadecimal string. It is deterministic across runs and
// platforms and is used to synthesize addressable names for sub-schemas that
// lack an intrinsic one.
func Hash(s Schema) (string, error) {
	data, err := ToJSON(s)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// synthesizedName builds the table key for an anonymous sub-schema:
// __<kind>_<digest>.
func synthesizedName(kind string, s Schema) (string, error) {
	h, err := Hash(s)
	if err != nil {
		return "", err
	}
	return synthesizedMarker + kind + "_" + h, nil
}

// IsSynthesizedName reports whether a reference names an anonymous
// sub-schema rather than a real named type.
func IsSynthesizedName(name string) bool {
	return strings.HasPrefix(name, synthesizedMarker)
}
