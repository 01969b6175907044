package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks v's struct tags and flattens failures into one readable error.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

type CreateJournalRequest struct {
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Content string `json:"content" validate:"required"`
}

type CreateGoalRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Duration    string  `json:"duration" validate:"required,oneof=1month 3months 6months 1year"`
	Category    string  `json:"category" validate:"required"`
}

// UpdateGoalRequest is a partial update; omitted fields are left unchanged.
type UpdateGoalRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Progress    *int    `json:"progress" validate:"omitempty,min=0,max=100"`
	Status      *string `json:"status" validate:"omitempty,oneof=active completed paused"`
}

type UpdateTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type GenerateTasksRequest struct {
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ReplaceExisting bool   `json:"replaceExisting"`
}
