package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: shapegen_infer
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_infer",
		Description: "Infer deduplicated type-alias declarations from JSON documents. Returns declarations (rendered as TypeScript type aliases by default, or a JSON Schema $defs document with format=jsonschema), root_aliases mapping each document label to its root alias, and warnings for empty arrays whose element type could not be inferred. Identical shapes across documents share one alias; origin contexts surface as comments in the output.",
	}, ToolInfer(d))

	// Tool 2: shapegen_cross_ref
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "shapegen_cross_ref",
		Description: "Report shapes that recur across multiple JSON documents. Returns shared: [{decl_id, alias, docs}] listing every structural type observed in at least min_docs documents (default 2). Use shapegen_infer first to see the full declaration set; use this tool to find the types worth extracting into a common module.",
	}, ToolCrossRef(d))
}
