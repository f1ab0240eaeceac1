package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/shapegen/internal/crossref"
	"github.com/usestring/shapegen/pkg/shape"
)

// CrossRefInput is the input for shapegen_cross_ref.
type CrossRefInput struct {
	Documents []Document `json:"documents" jsonschema:"JSON documents to cross-reference"`
	Filter    string     `json:"filter,omitempty" jsonschema:"Optional jq expression applied to each document before inference"`
	MinDocs   int        `json:"min_docs,omitempty" jsonschema:"Minimum number of documents a shape must span to be reported (default: 2)"`
}

// CrossRefOutput is the output for shapegen_cross_ref.
type CrossRefOutput struct {
	Shared      []crossref.SharedShape `json:"shared"`
	RootAliases map[string]string      `json:"root_aliases"`
	DeclCount   int                    `json:"decl_count"`
}

// ToolCrossRef reports shapes that recur across multiple input documents.
func ToolCrossRef(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CrossRefInput) (*sdkmcp.CallToolResult, CrossRefOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CrossRefInput) (*sdkmcp.CallToolResult, CrossRefOutput, error) {
		if len(input.Documents) < 2 {
			return nil, CrossRefOutput{}, ErrInvalidInput("at least two documents are required")
		}
		if len(input.Documents) > d.Config.MaxDocsPerCall {
			return nil, CrossRefOutput{}, ErrInvalidInput("too many documents: %d (max %d)", len(input.Documents), d.Config.MaxDocsPerCall)
		}

		cache := shape.NewCache()
		roots, err := normalizeDocuments(cache, input.Documents, input.Filter)
		if err != nil {
			return nil, CrossRefOutput{}, err
		}

		index := crossref.Build(cache.Decls())
		shared := index.Shared(input.MinDocs)
		if shared == nil {
			shared = []crossref.SharedShape{}
		}

		return nil, CrossRefOutput{
			Shared:      shared,
			RootAliases: roots,
			DeclCount:   cache.Len(),
		}, nil
	}
}
