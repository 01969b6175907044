package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	// TaskDailyTasks produces tomorrow's task batch and dashboard content.
	TaskDailyTasks TaskType = "daily_tasks"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
// An empty APIKey leaves the client unavailable; callers fall back.
type LLMConfig struct {
	LogCalls   bool
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig pointed at OpenRouter's
// OpenAI-compatible API with no key set.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:   false,
		Endpoint:   "https://openrouter.ai/api/v1",
		Model:      "openai/gpt-3.5-turbo",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskDailyTasks: {Temperature: 0.7, MaxTokens: 1500},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}
