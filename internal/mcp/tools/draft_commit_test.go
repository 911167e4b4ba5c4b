package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/commit-assistant/internal/assistant"
)

type fakeCommitDrafter struct {
	gotOpts assistant.CommitOptions
	draft   assistant.Draft
	err     error
}

func (f *fakeCommitDrafter) DraftCommit(_ context.Context, opts assistant.CommitOptions) (assistant.Draft, error) {
	f.gotOpts = opts
	return f.draft, f.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestDraftCommitHandlerPassesOptions(t *testing.T) {
	svc := &fakeCommitDrafter{draft: assistant.Draft{Message: "feat(cli): add x"}}
	h := &DraftCommitHandler{Service: svc}

	res, err := h.ToolAdapter(context.Background(), callRequest(map[string]any{
		"scope": "cli",
		"brief": true,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res)
	}
	if svc.gotOpts.Scope != "cli" || !svc.gotOpts.Brief {
		t.Fatalf("options not forwarded: %+v", svc.gotOpts)
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok || !strings.Contains(text.Text, "feat(cli): add x") {
		t.Fatalf("payload must carry the message: %+v", res.Content)
	}
}

func TestDraftCommitHandlerReportsFailure(t *testing.T) {
	svc := &fakeCommitDrafter{err: errors.New("no changes detected")}
	h := &DraftCommitHandler{Service: svc}

	res, err := h.ToolAdapter(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("pipeline failures must become tool errors, got %v", err)
	}
	if !res.IsError {
		t.Fatalf("expected IsError result")
	}
}
