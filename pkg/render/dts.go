package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/usestring/shapegen/pkg/shape"
)

// DTS renders declarations as TypeScript type aliases, one `type T<n> = ...;`
// per declaration. Origin contexts surface verbatim in a comment above each
// alias, and unresolved empty-array declarations carry a FIXME marker so they
// stand out for manual resolution.
type DTS struct{}

// NewDTS creates a TypeScript declaration renderer.
func NewDTS() *DTS {
	return &DTS{}
}

// Render formats all declarations into a single .d.ts document.
func (r *DTS) Render(decls []*shape.Decl) ([]byte, error) {
	var b strings.Builder

	for i, d := range decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("// from: ")
		b.WriteString(strings.Join(d.Contexts, ", "))
		b.WriteByte('\n')

		if d.Type.IsUnresolved() {
			b.WriteString("// FIXME: empty array, element type could not be inferred\n")
		}

		switch {
		case d.Type.IsObject():
			writeObjectAlias(&b, d)
		case d.Type.Ref != "":
			fmt.Fprintf(&b, "type %s = %s;\n", d.Alias(), arrayRefSyntax(d.Type))
		default:
			return nil, fmt.Errorf("declaration %s has no structural type", d.Alias())
		}
	}

	return []byte(b.String()), nil
}

func writeObjectAlias(b *strings.Builder, d *shape.Decl) {
	props := d.Type.Object
	if len(props) == 0 {
		fmt.Fprintf(b, "type %s = {};\n", d.Alias())
		return
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "type %s = {\n", d.Alias())
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %s;\n", propertyKey(k), props[k])
	}
	b.WriteString("};\n")
}

// propertyKey renders an object key bare when identifier-safe, quoted
// otherwise.
func propertyKey(key string) string {
	if IdentifierSafe(key) {
		return key
	}
	return strconv.Quote(key)
}

// arrayRefSyntax maps the internal unknown marker onto valid TypeScript. All
// other composite strings ("string[]", "T3[]") are already valid syntax.
func arrayRefSyntax(st shape.StructuralType) string {
	if st.IsUnresolved() {
		return "unknown[]"
	}
	return st.Ref
}
