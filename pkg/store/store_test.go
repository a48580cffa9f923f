// SPDX-License-Identifier: MPL-2.0

package store

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		host  string
		owner string
		want  string
	}{
		{"github.com", "alice", "gh-alice"},
		{"gitlab.com", "bob", "gl-bob"},
		{"bitbucket.org", "carol", "bb-carol"},
		{"git.example.org", "dave", "git-dave"},
	}

	for _, tt := range tests {
		if got := Namespace(tt.host, tt.owner); got != tt.want {
			t.Errorf("Namespace(%q, %q) = %q, want %q", tt.host, tt.owner, got, tt.want)
		}
	}
}

func TestInstallPath(t *testing.T) {
	s := &Store{DataDir: filepath.Join("home", "data", "typst")}
	got := s.InstallPath("gitlab.com", "bob", "foo", "0.1.0")
	want := filepath.Join("home", "data", "typst", "packages", "gl-bob", "foo", "0.1.0")
	if got != want {
		t.Errorf("InstallPath() = %q, want %q", got, want)
	}
}

func TestInstalledSpec(t *testing.T) {
	p := Installed{Namespace: "gh-alice", Name: "widgets", Version: "1.0.0"}
	if got := p.Spec(); got != "@gh-alice/widgets:1.0.0" {
		t.Errorf("Spec() = %q, want %q", got, "@gh-alice/widgets:1.0.0")
	}
}

func TestListRoot(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"packages/gh-alice/widgets/1.0.0",
		"packages/gh-alice/widgets/2.0.0",
		"packages/gl-bob/charts/0.3.1",
	} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	// Stray files at every level must be ignored.
	if err := os.WriteFile(filepath.Join(root, "packages", "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "packages", "gh-alice", "widgets", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	installed, err := ListRoot(root)
	if err != nil {
		t.Fatalf("ListRoot() error = %v", err)
	}

	var specs []string
	for _, p := range installed {
		specs = append(specs, p.Spec())
	}
	sort.Strings(specs)

	want := []string{
		"@gh-alice/widgets:1.0.0",
		"@gh-alice/widgets:2.0.0",
		"@gl-bob/charts:0.3.1",
	}
	if len(specs) != len(want) {
		t.Fatalf("ListRoot() returned %v, want %v", specs, want)
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("ListRoot()[%d] = %q, want %q", i, specs[i], want[i])
		}
	}
}

func TestListRoot_MissingRoot(t *testing.T) {
	installed, err := ListRoot(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Errorf("ListRoot() error = %v, want nil for missing root", err)
	}
	if installed != nil {
		t.Errorf("ListRoot() = %v, want nil for missing root", installed)
	}
}
