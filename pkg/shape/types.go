// Package shape infers canonical structural types from JSON values and
// deduplicates them through a content-addressed cache. Identical shapes
// resolve to the same alias; every alias maps to exactly one registered
// declaration that records where the shape was observed.
package shape

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Primitive type tags. Primitives are returned inline and never registered.
const (
	TagString  = "string"
	TagNumber  = "number"
	TagBoolean = "boolean"
	TagNull    = "null"
)

// MarkerUnknownArray is the reserved structural type registered for an empty
// array. An empty array carries no inferable element type, so each occurrence
// is registered forced-unique and surfaces as a warning after the run.
const MarkerUnknownArray = "unknown[]"

// StructuralType is the canonical description of a JSON value's shape.
// Exactly one of the two fields is set:
//   - Object maps property names to type references (primitive tags or
//     aliases). Keys are compared in sorted order, so two objects that differ
//     only in key declaration order are the same structural type.
//   - Ref holds a composite array string such as "string[]" or "T3[]", or the
//     MarkerUnknownArray literal.
type StructuralType struct {
	Object map[string]string `json:"-"`
	Ref    string            `json:"-"`
}

// ObjectType builds a structural type for an object. A nil props map is
// normalized to an empty one so the zero-key object remains a valid,
// registrable shape.
func ObjectType(props map[string]string) StructuralType {
	if props == nil {
		props = map[string]string{}
	}
	return StructuralType{Object: props}
}

// ArrayType builds the composite array type for an element reference.
func ArrayType(elemRef string) StructuralType {
	return StructuralType{Ref: elemRef + "[]"}
}

// IsObject reports whether the type is an object mapping.
func (st StructuralType) IsObject() bool { return st.Object != nil }

// IsArray reports whether the type is a composite array string.
func (st StructuralType) IsArray() bool {
	return st.Object == nil && strings.HasSuffix(st.Ref, "[]")
}

// IsUnresolved reports whether the type is the empty-array marker.
func (st StructuralType) IsUnresolved() bool {
	return st.Object == nil && st.Ref == MarkerUnknownArray
}

// ElemRef returns the element reference of an array type, e.g. "T3" for
// "T3[]". Empty string for non-array types.
func (st StructuralType) ElemRef() string {
	if !st.IsArray() {
		return ""
	}
	return strings.TrimSuffix(st.Ref, "[]")
}

// MarshalJSON emits the canonical serialization of the type: a JSON object
// with lexicographically sorted keys, or a JSON string for composite arrays.
// Registration hashes exactly these bytes, which is what ties two equal
// shapes to the same cache entry.
func (st StructuralType) MarshalJSON() ([]byte, error) {
	if st.Object != nil {
		// encoding/json sorts map keys, giving the canonical ordering.
		return json.Marshal(st.Object)
	}
	return json.Marshal(st.Ref)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (st *StructuralType) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		st.Object = nil
		return json.Unmarshal(data, &st.Ref)
	}
	st.Ref = ""
	st.Object = map[string]string{}
	return json.Unmarshal(data, &st.Object)
}

// Decl is a registered type declaration: a dense, first-seen-ordered id, the
// structural type itself, and every origin context the shape was observed at.
// Contexts are append-only and deliberately not deduplicated.
type Decl struct {
	ID       int            `json:"id"`
	Contexts []string       `json:"contexts"`
	Type     StructuralType `json:"type"`
}

// Alias returns the reference name for the declaration, e.g. "T3".
func (d *Decl) Alias() string {
	return "T" + strconv.Itoa(d.ID)
}

// Warning reports a declaration whose shape could not be fully resolved
// (currently only empty arrays). It is diagnosable but non-fatal: generation
// completes and a human resolves the ambiguous type afterwards.
type Warning struct {
	DeclID  int    `json:"decl_id"`
	Context string `json:"context"` // first origin context of the declaration
}
