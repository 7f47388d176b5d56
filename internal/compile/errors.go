package compile

import "fmt"

// CompilationError represents a LaTeX compilation failure.
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// ToolError represents a missing or failing external tool.
type ToolError struct {
	Message string
	Cause   error
}

func (e *ToolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tool error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("tool error: %s", e.Message)
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}
