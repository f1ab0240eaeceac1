// Package filter applies a jq expression to parsed documents before shape
// inference, so callers can strip envelopes or select sub-documents without
// preprocessing their input tree.
package filter

import (
	"fmt"

	"github.com/itchyny/gojq"
)

// Filter is a compiled jq expression.
type Filter struct {
	expression string
	code       *gojq.Code
}

// New parses and compiles a jq expression. An empty expression returns a nil
// filter, which Apply treats as identity.
func New(expression string) (*Filter, error) {
	if expression == "" {
		return nil, nil
	}

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &Filter{expression: expression, code: code}, nil
}

// Expression returns the source expression, or "" for the nil filter.
func (f *Filter) Expression() string {
	if f == nil {
		return ""
	}
	return f.expression
}

// Apply runs the expression against one document and returns the first value
// it produces. jq expressions can emit multiple values; only the first is
// inferred, matching the one-shape-per-document model.
func (f *Filter) Apply(doc any) (any, error) {
	if f == nil {
		return doc, nil
	}

	iter := f.code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			return nil, fmt.Errorf("jq expression %q produced no value", f.expression)
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq expression %q: %w", f.expression, err)
		}
		return v, nil
	}
}
