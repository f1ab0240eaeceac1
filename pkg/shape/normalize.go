package shape

import (
	"encoding/json"
	"sort"
)

// Normalize walks a parsed JSON value depth-first and returns its type
// reference: a primitive tag for primitives, or the alias of the registered
// declaration for objects and arrays. The origin path is diagnostic only; it
// is recorded in declaration contexts and never participates in hashing.
//
// Arrays are represented by their first element's type only. A heterogeneous
// array silently takes the shape of element 0; downstream consumers depend on
// this, so it is preserved rather than widened to a union. An empty array has
// no element to inspect and registers the MarkerUnknownArray forced-unique,
// so every occurrence gets a distinct alias a human can edit independently.
func (c *Cache) Normalize(v any, origin string) (string, error) {
	switch val := v.(type) {
	case nil:
		return TagNull, nil

	case string:
		return TagString, nil

	case bool:
		return TagBoolean, nil

	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return TagNumber, nil

	case []any:
		if len(val) == 0 {
			return c.register(StructuralType{Ref: MarkerUnknownArray}, origin, true)
		}
		elemRef, err := c.Normalize(val[0], origin)
		if err != nil {
			return "", err
		}
		return c.register(ArrayType(elemRef), origin, false)

	case map[string]any:
		props := make(map[string]string, len(val))
		for _, key := range sortedKeys(val) {
			ref, err := c.Normalize(val[key], origin+"."+key)
			if err != nil {
				return "", err
			}
			props[key] = ref
		}
		return c.register(ObjectType(props), origin, false)

	default:
		return "", &UnsupportedValueKindError{Origin: origin, Value: v}
	}
}

// NormalizeBytes parses raw JSON and normalizes the result.
func (c *Cache) NormalizeBytes(data []byte, origin string) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", err
	}
	return c.Normalize(v, origin)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Lexicographic order gives the canonical property traversal; two
	// objects differing only in declaration order normalize identically.
	sort.Strings(keys)
	return keys
}
