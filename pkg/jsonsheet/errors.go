package jsonsheet

import (
	"fmt"
	"strings"
)

// ValidationError indicates an invalid output target.
type ValidationError struct {
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("output path %q must end with .xlsx", e.Path)
}

// ValidateOutPath checks that path carries the required .xlsx extension
// (case-insensitive).
func ValidateOutPath(path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return &ValidationError{Path: path}
	}
	return nil
}
