package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWithSuggestion(t *testing.T) {
	base := errors.New("boom")
	err := WithSuggestion(base, "try again")

	if !errors.Is(err, base) {
		t.Error("wrapped error lost its cause")
	}
	if got := GetSuggestion(err); got != "try again" {
		t.Errorf("GetSuggestion() = %q, want %q", got, "try again")
	}
}

func TestGetSuggestionFromSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: jazz", ErrEmptyCatalogue), "spindle update"},
		{fmt.Errorf("%w: jazz", ErrLibraryNotFound), "spindle list"},
		{ErrPlayerNotFound, "ffmpeg"},
		{ErrLaunchFailed, "ffplay"},
		{ErrInvalidConfig, "spindlerc"},
		{errors.New("unrelated"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		got := GetSuggestion(tt.err)
		if tt.want == "" {
			if got != "" {
				t.Errorf("GetSuggestion(%v) = %q, want none", tt.err, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("GetSuggestion(%v) = %q, want mention of %q", tt.err, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}

	got := Format(ErrEmptyCatalogue)
	if !strings.Contains(got, "Error: catalogue is empty") {
		t.Errorf("Format() = %q, missing error line", got)
	}
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, missing suggestion", got)
	}

	got = Format(errors.New("unrelated"))
	if strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, unexpected suggestion", got)
	}
}

func TestPartialResult(t *testing.T) {
	var result PartialResult[int]
	result.Data = 3

	if result.HasErrors() {
		t.Error("fresh result reports errors")
	}
	result.AddError(nil)
	if result.HasErrors() {
		t.Error("AddError(nil) recorded an error")
	}

	result.AddError(errors.New("first"))
	if !result.HasErrors() || result.ErrorSummary() != "first" {
		t.Errorf("single-error summary = %q", result.ErrorSummary())
	}

	result.AddError(errors.New("second"))
	summary := result.ErrorSummary()
	if !strings.Contains(summary, "2 errors") || !strings.Contains(summary, "second") {
		t.Errorf("multi-error summary = %q", summary)
	}
}
