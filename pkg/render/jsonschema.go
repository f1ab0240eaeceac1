package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/shapegen/pkg/shape"
)

const schemaVersion = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema renders declarations as a JSON Schema document with one `$defs`
// entry per alias. Alias references become `$ref` pointers, so the emitted
// schema preserves the deduplication structure instead of inlining shapes.
type JSONSchema struct{}

// NewJSONSchema creates a JSON Schema renderer.
func NewJSONSchema() *JSONSchema {
	return &JSONSchema{}
}

// Render formats all declarations into a single schema document.
func (r *JSONSchema) Render(decls []*shape.Decl) ([]byte, error) {
	defs := make(jsonschema.Definitions, len(decls))
	for _, d := range decls {
		s, err := declSchema(d)
		if err != nil {
			return nil, err
		}
		defs[d.Alias()] = s
	}

	root := &jsonschema.Schema{
		Version:     schemaVersion,
		Definitions: defs,
	}
	return json.MarshalIndent(root, "", "  ")
}

func declSchema(d *shape.Decl) (*jsonschema.Schema, error) {
	var s *jsonschema.Schema

	switch {
	case d.Type.IsObject():
		s = objectSchema(d.Type.Object)
	case d.Type.IsUnresolved():
		// Unconstrained items; the origin comment is the only lead a
		// human has for resolving the element type.
		s = &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{}}
	case d.Type.IsArray():
		s = &jsonschema.Schema{Type: "array", Items: refSchema(d.Type.ElemRef())}
	default:
		return nil, fmt.Errorf("declaration %s has no structural type", d.Alias())
	}

	s.Description = "from: " + strings.Join(d.Contexts, ", ")
	return s, nil
}

func objectSchema(props map[string]string) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: jsonschema.NewProperties(),
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s.Properties.Set(k, refSchema(props[k]))
	}
	return s
}

// refSchema maps a type reference onto a schema node: primitive tags become
// inline type schemas, aliases become $defs pointers.
func refSchema(ref string) *jsonschema.Schema {
	switch ref {
	case shape.TagString, shape.TagNumber, shape.TagBoolean, shape.TagNull:
		return &jsonschema.Schema{Type: ref}
	}
	return &jsonschema.Schema{Ref: "#/$defs/" + ref}
}
