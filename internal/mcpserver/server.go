// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schema validation as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/schemaguard/schemaguard"
)

const serverInstructions = `schemaguard MCP server — validates JSON/YAML data against JSON-schema-compatible documents, with optional type coercion and unknown-property stripping.

Configuration: All defaults are configurable via SCHEMAGUARD_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SCHEMAGUARD_COERCE_DEFAULT (default: false) — coerce string inputs toward declared types by default
- SCHEMAGUARD_STRIP_DEFAULT (default: false) — strip undeclared properties by default
- SCHEMAGUARD_CACHE_ENABLED (default: true) — disable validator caching entirely
- SCHEMAGUARD_CACHE_TTL (default: 15m) — cache TTL for compiled validators
- SCHEMAGUARD_MAX_INLINE_SIZE (default: 4194304) — maximum inline content size in bytes

Caching: Built validators are cached per session, keyed by schema content and flags, so repeated validations against the same schema skip recompilation. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		validatorCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemaguard", Version: schemaguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a JSON or YAML data payload against a JSON-schema-compatible document. Returns a valid flag, the transformed payload (after optional coercion/stripping), and structured error entries with instance paths and keywords. Kinds: body, param, query, response. Coercion and stripping defaults are configurable via SCHEMAGUARD_COERCE_DEFAULT and SCHEMAGUARD_STRIP_DEFAULT env vars.",
	}, handleValidate)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
