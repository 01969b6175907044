package domain

type GoalDuration string

const (
	GoalOneMonth    GoalDuration = "1month"
	GoalThreeMonths GoalDuration = "3months"
	GoalSixMonths   GoalDuration = "6months"
	GoalOneYear     GoalDuration = "1year"
)

// ValidGoalDurations is the canonical set of accepted goal duration strings.
var ValidGoalDurations = map[GoalDuration]bool{
	GoalOneMonth: true, GoalThreeMonths: true, GoalSixMonths: true, GoalOneYear: true,
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// ValidGoalStatuses is the canonical set of accepted goal status strings.
var ValidGoalStatuses = map[GoalStatus]bool{
	GoalActive: true, GoalCompleted: true, GoalPaused: true,
}

type TaskCategory string

const (
	CategoryLearning     TaskCategory = "learning"
	CategoryHealth       TaskCategory = "health"
	CategoryProductivity TaskCategory = "productivity"
	CategoryWellness     TaskCategory = "wellness"
	CategoryCreativity   TaskCategory = "creativity"
	CategorySocial       TaskCategory = "social"
	CategoryFinancial    TaskCategory = "financial"
	CategoryPersonal     TaskCategory = "personal"
)

// TaskCategories lists the categories in the order they are presented to the model.
var TaskCategories = []TaskCategory{
	CategoryLearning, CategoryHealth, CategoryProductivity, CategoryWellness,
	CategoryCreativity, CategorySocial, CategoryFinancial, CategoryPersonal,
}

// IsValid reports whether c is one of TaskCategories.
func (c TaskCategory) IsValid() bool {
	for _, known := range TaskCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}
