package metamodel

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrNoDataHolder indicates the root type lacks the holder directive.
	ErrNoDataHolder = errors.New("no data-holder marker")

	// ErrNoSubjectID indicates no direct or inherited field of the root type
	// carries the subject id marker.
	ErrNoSubjectID = errors.New("no subject id field")

	// ErrRecursiveType indicates the walk reached a type already being walked.
	ErrRecursiveType = errors.New("recursive type")
)

// GenerationError wraps a sentinel error with the type it was raised for.
type GenerationError struct {
	Err   error    // Underlying sentinel error
	Type  string   // Qualified name of the root type
	Chain []string // For ErrRecursiveType, the types forming the cycle
}

func (e *GenerationError) Error() string {
	if len(e.Chain) > 0 {
		return fmt.Sprintf("%s in %s: %s (add one of these types to the ignore list)",
			e.Err.Error(), e.Type, strings.Join(e.Chain, " -> "))
	}

	return fmt.Sprintf("%s in %s", e.Err.Error(), e.Type)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
