package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/commit-assistant/internal/assistant"
)

// CommitDrafter is the slice of the pipeline this tool needs.
type CommitDrafter interface {
	DraftCommit(ctx context.Context, opts assistant.CommitOptions) (assistant.Draft, error)
}

type DraftCommitHandler struct {
	Service CommitDrafter
}

type draftPayload struct {
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func (h *DraftCommitHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	opts := assistant.CommitOptions{
		Scope:      stringArgument(args, "scope"),
		Brief:      boolArgument(args, "brief"),
		Emoji:      boolArgument(args, "emoji"),
		Simplified: boolArgument(args, "simplified"),
	}

	draft, err := h.Service.DraftCommit(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultJSON(draftPayload{Message: draft.Message, Violations: draft.Violations})
}
