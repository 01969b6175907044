package llm

import "errors"

var (
	// ErrUnavailable indicates no model can be reached: no API key is
	// configured or the endpoint refused the connection.
	ErrUnavailable = errors.New("llm unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyResponse indicates the completion carried no choices.
	ErrEmptyResponse = errors.New("llm returned no choices")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
