package generation

// Source records where a batch came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// AITask is one task as the model returns it. Category and priority stay raw
// strings here; the generator repairs unknown values before validation.
type AITask struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	TimeEstimate  string  `json:"timeEstimate" validate:"required"`
	Priority      string  `json:"priority" validate:"oneof=high medium low"`
	RelatedGoalID *string `json:"relatedGoalId,omitempty"`
}

// AITaskResponse is the payload the model is asked to produce.
type AITaskResponse struct {
	Tasks      []AITask `json:"tasks" validate:"min=5,max=7,dive"`
	DailyQuote string   `json:"dailyQuote" validate:"required"`
	FocusArea  string   `json:"focusArea" validate:"required"`
}

const fallbackQuote = "Progress, not perfection, is the goal. Every small step counts."

// FallbackResponse returns the fixed batch used whenever the model cannot
// produce a usable one. Each call returns a fresh copy.
func FallbackResponse() AITaskResponse {
	return AITaskResponse{
		Tasks: []AITask{
			{
				Title:        "Write in your journal",
				Description:  "Reflect on today's experiences and thoughts",
				Category:     "wellness",
				TimeEstimate: "10 minutes",
				Priority:     "high",
			},
			{
				Title:        "Take a 20-minute walk",
				Description:  "Get some fresh air and light exercise",
				Category:     "health",
				TimeEstimate: "20 minutes",
				Priority:     "medium",
			},
			{
				Title:        "Read for 15 minutes",
				Description:  "Continue learning with a book or article",
				Category:     "learning",
				TimeEstimate: "15 minutes",
				Priority:     "medium",
			},
			{
				Title:        "Organize your workspace",
				Description:  "Clear your desk and organize your materials",
				Category:     "productivity",
				TimeEstimate: "15 minutes",
				Priority:     "low",
			},
		},
		DailyQuote: fallbackQuote,
		FocusArea:  "Personal Growth",
	}
}
