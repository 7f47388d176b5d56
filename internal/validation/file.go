package validation

import (
	"fmt"
	"os"

	"github.com/jonathan/rolecolor-agent/internal/types"
)

// ValidateFile reads a document from disk and runs the structural checks.
// The only error condition is failing to read the file; the checks
// themselves never fail.
func ValidateFile(path string) (*types.ValidationReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{
			Message: fmt.Sprintf("failed to read document: %s", path),
			Cause:   err,
		}
	}
	return CheckStructure(string(content)), nil
}
