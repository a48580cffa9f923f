// SPDX-License-Identifier: MPL-2.0

// Package materialize turns a Typst package source tree into its
// distributable, version-pinned form. It mirrors the tree into a
// destination directory while honoring the manifest's exclude patterns,
// strips editor-only schema annotations from typst.toml, and rewrites
// relative self-imports into canonical package-qualified imports.
package materialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Excluder decides whether a path relative to the package root is
// excluded from materialization.
//
// Two mechanisms are combined. Every pattern is compiled into a glob and
// matched against the '/'-normalized relative path, with wildcards
// crossing path boundaries so "*.pdf" excludes PDFs anywhere in the
// tree. Additionally, plain
// patterns without glob metacharacters that denote a directory (either by
// a trailing separator or by naming an existing directory under the
// source root) become anchors that exclude the whole subtree, so users
// can write "build" instead of "build/**".
type Excluder struct {
	globs   []glob.Glob
	anchors []string
}

// NewExcluder compiles the exclude patterns for a package rooted at
// sourceDir. An invalid glob pattern is a configuration error and fails
// the whole set.
func NewExcluder(sourceDir string, patterns []string) (*Excluder, error) {
	e := &Excluder{}

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		e.globs = append(e.globs, g)

		if hasGlobMeta(pattern) {
			continue
		}

		native := filepath.FromSlash(pattern)
		isDir := strings.HasSuffix(pattern, "/")
		if !isDir {
			if info, err := os.Stat(filepath.Join(sourceDir, native)); err == nil && info.IsDir() {
				isDir = true
			}
		}
		if isDir {
			e.anchors = append(e.anchors, strings.TrimSuffix(native, string(filepath.Separator)))
		}
	}

	return e, nil
}

// Excluded reports whether the relative path (native separators) matches
// any glob or falls under a directory anchor.
func (e *Excluder) Excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, g := range e.globs {
		if g.Match(slashed) {
			return true
		}
	}

	for _, anchor := range e.anchors {
		if rel == anchor || strings.HasPrefix(rel, anchor+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// hasGlobMeta reports whether s contains glob metacharacters. ']' only
// acts as one when '[' is present, so it is not checked.
func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
