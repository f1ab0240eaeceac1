// Package render turns registered shape declarations into concrete output
// documents. Renderers are mechanical: all deduplication and identity
// decisions happen in pkg/shape, a renderer only formats what the cache
// enumerates.
package render

import (
	"fmt"
	"regexp"

	"github.com/usestring/shapegen/pkg/shape"
)

// Renderer formats declarations, in first-seen (id) order, into one output
// document.
type Renderer interface {
	Render(decls []*shape.Decl) ([]byte, error)
}

// Output format names accepted by ForFormat.
const (
	FormatDTS        = "dts"
	FormatJSONSchema = "jsonschema"
)

// ForFormat returns the renderer for a format name.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatDTS, "":
		return NewDTS(), nil
	case FormatJSONSchema:
		return NewJSONSchema(), nil
	default:
		return nil, fmt.Errorf("unknown output format: %q", format)
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// IdentifierSafe reports whether a property key can be rendered bare. Keys
// that fail this check are rendered as quoted strings. The classification is
// per key and never affects shape identity.
func IdentifierSafe(key string) bool {
	return identRe.MatchString(key)
}
