package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/commit-assistant/internal/assistant"
)

type PRDrafter interface {
	DraftPR(ctx context.Context, opts assistant.PROptions) (assistant.Draft, error)
}

type DraftPRHandler struct {
	Service PRDrafter
}

func (h *DraftPRHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	base := stringArgument(args, "base")
	if base == "" {
		return mcp.NewToolResultError("base must be provided"), nil
	}
	head := stringArgument(args, "head")
	if head == "" {
		head = "HEAD"
	}

	draft, err := h.Service.DraftPR(ctx, assistant.PROptions{
		Base:    base,
		Head:    head,
		Context: stringArgument(args, "context"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultJSON(draftPayload{Message: draft.Message, Violations: draft.Violations})
}
