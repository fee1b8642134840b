package accqsure

import "fmt"

// APIError is a non-2xx response from the AccQsure API. Body is the parsed
// JSON error payload when the response declared application/json, otherwise
// a map with the raw text under "message".
type APIError struct {
	Status int
	Body   interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %v", e.Status, e.Body)
}

// TaskError is a terminal server-side task failure or cancellation. Result
// carries the task's error payload.
type TaskError struct {
	Result interface{}
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task failed: %v", e.Result)
}

// TimeoutError indicates the polling budget for a task was exhausted before
// the task reached a terminal state.
type TimeoutError struct {
	TaskID string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for task %s", e.TaskID)
}

// SpecificationError indicates an entity is missing a field an operation
// requires, such as reading contents from a document with no uploaded asset.
type SpecificationError struct {
	Attribute string
	Message   string
}

func (e *SpecificationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Attribute, e.Message)
}
