package rewriting

import "fmt"

// APICallError represents a failure calling the LLM provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewriting: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rewriting: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
