// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name: "operation only",
			err: &ActionableError{
				Operation: "load manifest",
			},
			expected: "failed to load manifest",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load manifest",
				Resource:  "./typst.toml",
			},
			expected: "failed to load manifest: ./typst.toml",
		},
		{
			name: "operation with cause",
			err: &ActionableError{
				Operation: "parse config",
				Cause:     errors.New("syntax error at line 5"),
			},
			expected: "failed to parse config: syntax error at line 5",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "clone repository",
				Resource:  "https://github.com/alice/widgets.git",
				Cause:     errors.New("authentication required"),
			},
			expected: "failed to clone repository: https://github.com/alice/widgets.git: authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	err := &ActionableError{
		Operation:   "clone repository",
		Resource:    "https://github.com/alice/widgets.git",
		Suggestions: []string{"Check that the repository exists", "Set GITHUB_TOKEN for private repositories"},
		Cause:       errors.New("repository not found"),
	}

	t.Run("default includes suggestions", func(t *testing.T) {
		out := err.Format(false)
		if !strings.Contains(out, "Check that the repository exists") {
			t.Errorf("Format(false) missing suggestion:\n%s", out)
		}
		if strings.Contains(out, "Error chain:") {
			t.Errorf("Format(false) should not include the error chain:\n%s", out)
		}
	})

	t.Run("verbose includes error chain", func(t *testing.T) {
		out := err.Format(true)
		if !strings.Contains(out, "Error chain:") {
			t.Errorf("Format(true) missing error chain:\n%s", out)
		}
		if !strings.Contains(out, "repository not found") {
			t.Errorf("Format(true) missing cause:\n%s", out)
		}
	})
}

func TestActionableError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapWithOperation(cause, "materialize package")
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapWithOperation(nil, "anything") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if WrapWithContext(nil, "anything", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	err := WrapWithContext(errors.New("boom"), "resolve Git source", "gh/alice/widgets")
	want := "failed to resolve Git source: gh/alice/widgets: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Run("without operation builds nil", func(t *testing.T) {
		if NewErrorContext().WithResource("x").Build() != nil {
			t.Error("Build() without operation should return nil")
		}
		if NewErrorContext().BuildError() != nil {
			t.Error("BuildError() without operation should return nil error")
		}
	})

	t.Run("full builder", func(t *testing.T) {
		cause := errors.New("bad TOML")
		err := NewErrorContext().
			WithOperation("load configuration").
			WithResource("config.toml").
			WithSuggestion("Check that the file contains valid TOML").
			Wrap(cause).
			Build()

		if err == nil {
			t.Fatal("Build() returned nil")
		}
		if !err.HasSuggestions() {
			t.Error("HasSuggestions() = false, want true")
		}
		if !errors.Is(err, cause) {
			t.Error("built error should wrap the cause")
		}
	})
}
