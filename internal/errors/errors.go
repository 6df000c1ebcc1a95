package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrEmptyCatalogue  = errors.New("catalogue is empty")
	ErrLibraryNotFound = errors.New("library not found")
	ErrPlayerNotFound  = errors.New("playback binary not found")
	ErrProbeNotFound   = errors.New("metadata probe binary not found")
	ErrLaunchFailed    = errors.New("playback process failed to start")
	ErrNoDuration      = errors.New("track duration could not be determined")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// SpindleError wraps an error with a user-friendly suggestion.
type SpindleError struct {
	Err        error
	Suggestion string
}

func (e *SpindleError) Error() string {
	return e.Err.Error()
}

func (e *SpindleError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &SpindleError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a SpindleError with suggestion
	var spindleErr *SpindleError
	if errors.As(err, &spindleErr) && spindleErr.Suggestion != "" {
		return spindleErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrEmptyCatalogue) || strings.Contains(errStr, "catalogue is empty") {
		return "Run 'spindle update <name> --path <dir>' to index your music directory"
	}

	if errors.Is(err, ErrLibraryNotFound) || strings.Contains(errStr, "library not found") {
		return "Run 'spindle list' to see existing libraries"
	}

	if errors.Is(err, ErrPlayerNotFound) || errors.Is(err, ErrProbeNotFound) ||
		strings.Contains(errStr, "ffplay") || strings.Contains(errStr, "ffprobe") {
		return "Install ffmpeg (which provides ffplay and ffprobe) and make sure it is on your PATH"
	}

	if errors.Is(err, ErrLaunchFailed) {
		return "Check that the audio file is readable and ffplay works in this environment"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Check ~/.spindlerc or $XDG_CONFIG_HOME/spindle/config.toml"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
