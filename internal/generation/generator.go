package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/llm"
	"github.com/go-playground/validator/v10"
)

const (
	maxTasks            = 7
	defaultTimeEstimate = "15 minutes"
)

// Result is the outcome of one generation call. Response is always usable;
// Reason explains why Source is SourceFallback and is nil otherwise.
type Result struct {
	Response  AITaskResponse
	Source    Source
	Reason    error
	Model     string
	LatencyMs int64
}

// Generator turns a context snapshot into a task batch. It never fails:
// every error path yields FallbackResponse.
type Generator struct {
	client   llm.LLMClient
	validate *validator.Validate
	logger   *slog.Logger
}

// NewGenerator creates a Generator backed by client.
func NewGenerator(client llm.LLMClient, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, validate: validator.New(), logger: logger}
}

func (g *Generator) Generate(ctx context.Context, in PromptInput) Result {
	start := time.Now()

	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskDailyTasks,
		UserPrompt: ComposePrompt(in),
	})
	if err != nil {
		return g.fallback(err, "", start)
	}

	parsed, err := llm.ExtractJSON[AITaskResponse](resp.Text, nil)
	if err != nil {
		return g.fallback(err, resp.Model, start)
	}

	repair(&parsed, in.GoalIDs())
	if err := g.validate.Struct(parsed); err != nil {
		return g.fallback(fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err), resp.Model, start)
	}

	return Result{
		Response:  parsed,
		Source:    SourceModel,
		Model:     resp.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

func (g *Generator) fallback(reason error, model string, start time.Time) Result {
	g.logger.Warn("task generation fell back", "reason", reason)
	return Result{
		Response:  FallbackResponse(),
		Source:    SourceFallback,
		Reason:    reason,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}
}

// repair normalises recoverable model mistakes in place: extra tasks are
// dropped, unknown enums get defaults and dangling goal references are cleared.
func repair(r *AITaskResponse, goalIDs map[string]bool) {
	if len(r.Tasks) > maxTasks {
		r.Tasks = r.Tasks[:maxTasks]
	}
	r.DailyQuote = strings.TrimSpace(r.DailyQuote)
	r.FocusArea = strings.TrimSpace(r.FocusArea)

	for i := range r.Tasks {
		t := &r.Tasks[i]
		t.Title = strings.TrimSpace(t.Title)
		t.Description = strings.TrimSpace(t.Description)

		cat := domain.TaskCategory(strings.ToLower(strings.TrimSpace(t.Category)))
		if !cat.IsValid() {
			cat = domain.CategoryPersonal
		}
		t.Category = string(cat)

		pri := domain.Priority(strings.ToLower(strings.TrimSpace(t.Priority)))
		if !pri.IsValid() {
			pri = domain.PriorityMedium
		}
		t.Priority = string(pri)

		t.TimeEstimate = domain.CoalesceStr(strings.TrimSpace(t.TimeEstimate), defaultTimeEstimate)

		if t.RelatedGoalID != nil && !goalIDs[*t.RelatedGoalID] {
			t.RelatedGoalID = nil
		}
	}
}
