package fieldweaver

import (
	"errors"
	"fmt"
)

// ErrNoFields is returned by NewEngine when the merged field spec is empty
// and there is nothing for the engine to do.
var ErrNoFields = errors.New("fieldweaver: no fields configured")

// PatternError represents a regular expression that failed to compile. The
// message is the compiler's original diagnostic, memoized so the same
// pattern text fails identically on every use.
type PatternError struct {
	Pattern string // Pattern text as written in the format string
	Message string // Compiler diagnostic from the first (only) attempt
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Message)
}

// NewPatternError creates a new PatternError from the compiler's diagnostic.
func NewPatternError(pattern string, cause error) *PatternError {
	return &PatternError{
		Pattern: pattern,
		Message: cause.Error(),
	}
}

// SettingError represents a settings key lookup that found nothing.
type SettingError struct {
	Key string // Name of the missing setting
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("no such setting %q", e.Key)
}

// NewSettingError creates a new SettingError.
func NewSettingError(key string) *SettingError {
	return &SettingError{Key: key}
}
