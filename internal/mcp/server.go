// Package mcp exposes the drafting pipeline to MCP clients over streamable
// HTTP, so editors and agents can request commit messages and PR
// descriptions without shelling out to the CLI.
package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Options      []server.StreamableHTTPOption
}

type Server struct {
	MCP     *server.MCPServer
	HTTP    *server.StreamableHTTPServer
	Handler http.Handler
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		"commit-assistant",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	toolDefinitions := map[string]mcp.Tool{
		"draft_commit_message": mcp.NewTool("draft_commit_message",
			mcp.WithDescription("Draft a conventional commit message for the staged changes of the working repository. Returns the message plus any convention violations."),
			mcp.WithString("scope",
				mcp.Description("Optional commit scope, e.g. 'cli' for 'feat(cli): ...'"),
			),
			mcp.WithBoolean("brief",
				mcp.Description("Generate the header line only, no body (default: false)"),
			),
			mcp.WithBoolean("emoji",
				mcp.Description("Prefix the header with one emoji matching the commit type (default: false)"),
			),
			mcp.WithBoolean("simplified",
				mcp.Description("Summarize the diff to file paths and line counts before prompting (default: auto by size)"),
			),
		),
		"draft_pr_description": mcp.NewTool("draft_pr_description",
			mcp.WithDescription("Draft a pull request title and description for the diff between two refs. Returns the rendered description plus any convention violations."),
			mcp.WithString("base",
				mcp.Required(),
				mcp.Description("Base branch or ref the pull request targets (e.g. 'main')"),
			),
			mcp.WithString("head",
				mcp.Description("Head branch or ref carrying the changes (default: HEAD)"),
			),
			mcp.WithString("context",
				mcp.Description("Optional extra context for the description"),
			),
		),
		"ping": mcp.NewTool("ping",
			mcp.WithDescription("Liveness check; echoes the given message."),
			mcp.WithString("message",
				mcp.Description("Text to echo back"),
			),
		),
	}

	for name, adapter := range cfg.ToolAdapters {
		tool := toolDefinitions[name]
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer, cfg.Options...)

	return &Server{
		MCP:     mcpServer,
		HTTP:    httpServer,
		Handler: httpServer,
	}
}
