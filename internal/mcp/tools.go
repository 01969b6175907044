package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/sprout/internal/contract"
	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Register adds the sprout tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("generate_tasks",
		mcp.WithDescription("Generates a batch of personal growth tasks from recent journal entries and active goals. Defaults to tomorrow."),
		mcp.WithString("date", mcp.Description("Target date as YYYY-MM-DD.")),
		mcp.WithBoolean("replace_existing", mcp.Description("Replace the tasks already generated for that date.")),
	), t.generateTasks)

	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("Lists the tasks for a date. Defaults to today."),
		mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD.")),
	), t.listTasks)

	s.AddTool(mcp.NewTool("add_journal",
		mcp.WithDescription("Writes the journal entry for a date. One entry per date."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Journal text.")),
		mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD. Defaults to today.")),
	), t.addJournal)

	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Returns today's tasks, quote, focus area, goals and streaks."),
	), t.getDashboard)
}

func stringArg(req mcp.CallToolRequest, name string) string {
	v, _ := req.Params.Arguments[name].(string)
	return v
}

func boolArg(req mcp.CallToolRequest, name string) bool {
	v, _ := req.Params.Arguments[name].(bool)
	return v
}

// jsonResult wraps v as a text result; failures become tool errors.
func jsonResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) generateTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := t.svc.Generation.GenerateForUser(ctx, service.GenerateRequest{
		UserID:          t.userID,
		TargetDate:      stringArg(req, "date"),
		Now:             t.now(),
		ReplaceExisting: boolArg(req, "replace_existing"),
	})
	if err != nil {
		return jsonResult(nil, err)
	}
	return jsonResult(contract.GenerateTasksResponse{
		Date:             out.TargetDate,
		Skipped:          out.Skipped,
		Source:           string(out.Source),
		Tasks:            out.Tasks,
		DashboardContent: out.Dashboard,
	}, nil)
}

func (t *Tools) listTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := stringArg(req, "date")
	if date == "" {
		date = domain.Today(t.now(), t.loc)
	}
	tasks, err := t.svc.Tasks.List(ctx, t.userID, service.TaskQuery{Date: date})
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return jsonResult(tasks, err)
}

func (t *Tools) addJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content := stringArg(req, "content")
	if content == "" {
		return mcp.NewToolResultError("'content' is required and must be a non-empty string"), nil
	}
	entry, err := t.svc.Journals.Write(ctx, t.userID, stringArg(req, "date"), content)
	return jsonResult(entry, err)
}

func (t *Tools) getDashboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := t.svc.Dashboard.Get(ctx, t.userID, t.now())
	return jsonResult(resp, err)
}
