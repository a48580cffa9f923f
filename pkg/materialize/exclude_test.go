// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExcluder_Globs(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		rel      string
		excluded bool
	}{
		{
			name:     "extension glob matches top-level file",
			patterns: []string{"*.pdf"},
			rel:      "manual.pdf",
			excluded: true,
		},
		{
			name:     "extension glob matches nested file",
			patterns: []string{"*.pdf"},
			rel:      filepath.Join("docs", "manual.pdf"),
			excluded: true,
		},
		{
			name:     "extension glob matches deeply nested file",
			patterns: []string{"*.pdf"},
			rel:      filepath.Join("docs", "deep", "manual.pdf"),
			excluded: true,
		},
		{
			name:     "extension glob does not match other extensions",
			patterns: []string{"*.pdf"},
			rel:      filepath.Join("docs", "manual.typ"),
			excluded: false,
		},
		{
			name:     "single char wildcard",
			patterns: []string{"draft?.typ"},
			rel:      "draft1.typ",
			excluded: true,
		},
		{
			name:     "character class",
			patterns: []string{"chapter[12].typ"},
			rel:      "chapter3.typ",
			excluded: false,
		},
		{
			name:     "no patterns excludes nothing",
			patterns: nil,
			rel:      "anything.typ",
			excluded: false,
		},
		{
			name:     "plain name matches only itself without a directory",
			patterns: []string{"notes"},
			rel:      filepath.Join("notes", "a.typ"),
			excluded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExcluder(t.TempDir(), tt.patterns)
			if err != nil {
				t.Fatalf("NewExcluder() error = %v", err)
			}
			if got := e.Excluded(tt.rel); got != tt.excluded {
				t.Errorf("Excluded(%q) = %v, want %v", tt.rel, got, tt.excluded)
			}
		})
	}
}

func TestExcluder_DirectoryAnchors(t *testing.T) {
	sourceDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(sourceDir, "examples"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		patterns []string
		rel      string
		excluded bool
	}{
		{
			name:     "existing directory excludes its subtree",
			patterns: []string{"examples"},
			rel:      filepath.Join("examples", "demo.typ"),
			excluded: true,
		},
		{
			name:     "existing directory excludes itself",
			patterns: []string{"examples"},
			rel:      "examples",
			excluded: true,
		},
		{
			name:     "trailing slash anchors without an existing directory",
			patterns: []string{"build/"},
			rel:      filepath.Join("build", "out.pdf"),
			excluded: true,
		},
		{
			name:     "anchor does not match sibling prefix",
			patterns: []string{"examples"},
			rel:      "examples-extra.typ",
			excluded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExcluder(sourceDir, tt.patterns)
			if err != nil {
				t.Fatalf("NewExcluder() error = %v", err)
			}
			if got := e.Excluded(tt.rel); got != tt.excluded {
				t.Errorf("Excluded(%q) = %v, want %v", tt.rel, got, tt.excluded)
			}
		})
	}
}

func TestNewExcluder_InvalidPattern(t *testing.T) {
	if _, err := NewExcluder(t.TempDir(), []string{"[unterminated"}); err == nil {
		t.Error("NewExcluder() expected error for invalid pattern, got nil")
	}
}
