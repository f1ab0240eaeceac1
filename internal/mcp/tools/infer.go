package tools

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/filter"
	"github.com/usestring/shapegen/internal/resultcache"
	"github.com/usestring/shapegen/pkg/render"
	"github.com/usestring/shapegen/pkg/shape"
)

// Document is one labeled JSON input.
type Document struct {
	Label string `json:"label,omitempty" jsonschema:"Document label surfaced in origin contexts (default: doc_<n>)"`
	JSON  string `json:"json" jsonschema:"The JSON document text"`
}

// InferInput is the input for shapegen_infer.
type InferInput struct {
	Documents []Document `json:"documents" jsonschema:"JSON documents to infer deduplicated type aliases from"`
	Format    string     `json:"format,omitempty" jsonschema:"Output format: dts (default) or jsonschema"`
	Filter    string     `json:"filter,omitempty" jsonschema:"Optional jq expression applied to each document before inference"`
}

// InferOutput is the output for shapegen_infer.
type InferOutput struct {
	Declarations string            `json:"declarations"`
	RootAliases  map[string]string `json:"root_aliases"`
	DeclCount    int               `json:"decl_count"`
	Warnings     []shape.Warning   `json:"warnings,omitempty"`
	Cached       bool              `json:"cached,omitempty"`
}

// ToolInfer infers deduplicated type-alias declarations from one or more JSON
// documents. Each call is an independent generation run with its own cache;
// identical requests are answered from the LRU result cache.
func ToolInfer(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferInput) (*sdkmcp.CallToolResult, InferOutput, error) {
		if len(input.Documents) == 0 {
			return nil, InferOutput{}, ErrInvalidInput("at least one document is required")
		}
		if len(input.Documents) > d.Config.MaxDocsPerCall {
			return nil, InferOutput{}, ErrInvalidInput("too many documents: %d (max %d)", len(input.Documents), d.Config.MaxDocsPerCall)
		}

		format := input.Format
		if format == "" {
			format = render.FormatDTS
		}
		renderer, err := render.ForFormat(format)
		if err != nil {
			return nil, InferOutput{}, ErrInvalidInput("%v", err)
		}

		key := requestKey(format, input.Filter, input.Documents)
		if e, ok := d.Results.Get(key); ok {
			return nil, outputFromEntry(e, true), nil
		}

		cache := shape.NewCache()
		roots, err := normalizeDocuments(cache, input.Documents, input.Filter)
		if err != nil {
			return nil, InferOutput{}, err
		}

		rendered, err := renderer.Render(cache.Decls())
		if err != nil {
			return nil, InferOutput{}, ErrInternal("rendering declarations", err)
		}

		entry := &resultcache.Entry{
			Rendered:    rendered,
			RootAliases: roots,
			DeclCount:   cache.Len(),
			Warnings:    cache.Warnings(),
		}
		d.Results.Put(key, entry)

		return nil, outputFromEntry(entry, false), nil
	}
}

// normalizeDocuments runs every document through one shared cache and returns
// the root alias per label.
func normalizeDocuments(cache *shape.Cache, docs []Document, filterExpr string) (map[string]string, error) {
	f, err := filter.New(filterExpr)
	if err != nil {
		return nil, ErrInvalidInput("%v", err)
	}

	roots := make(map[string]string, len(docs))
	for i, doc := range docs {
		label := doc.Label
		if label == "" {
			label = fmt.Sprintf("doc_%d", i)
		}

		var v any
		if err := json.Unmarshal([]byte(doc.JSON), &v); err != nil {
			return nil, ErrInvalidInput("document %s: invalid JSON: %v", label, err)
		}

		filtered, err := f.Apply(v)
		if err != nil {
			return nil, ErrInvalidInput("document %s: %v", label, err)
		}

		alias, err := cache.Normalize(filtered, label+":root")
		if err != nil {
			return nil, ErrInternal(fmt.Sprintf("normalizing document %s", label), err)
		}
		roots[label] = alias
	}
	return roots, nil
}

func requestKey(format, filterExpr string, docs []Document) string {
	parts := make([]string, 0, 2+2*len(docs))
	parts = append(parts, format, filterExpr)
	for _, doc := range docs {
		parts = append(parts, doc.Label, doc.JSON)
	}
	return resultcache.KeyFor(parts...)
}

func outputFromEntry(e *resultcache.Entry, cached bool) InferOutput {
	return InferOutput{
		Declarations: string(e.Rendered),
		RootAliases:  e.RootAliases,
		DeclCount:    e.DeclCount,
		Warnings:     e.Warnings,
		Cached:       cached,
	}
}
