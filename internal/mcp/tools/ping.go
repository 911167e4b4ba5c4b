package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

type PingHandler struct{}

func (h *PingHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message := stringArgument(req.GetArguments(), "message")
	if message == "" {
		message = "(empty)"
	}
	return mcp.NewToolResultText("pong: " + message), nil
}
