// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// ManifestFilename is the fixed manifest filename at the package root.
	ManifestFilename = "typst.toml"

	// sourceExt is the Typst source file extension.
	sourceExt = ".typ"

	// schemaCommentPrefix marks editor-only schema annotation lines in
	// typst.toml that must not ship in the materialized package.
	schemaCommentPrefix = "#:schema"
)

// Options configures a materialization pass.
type Options struct {
	// Exclude holds the manifest's exclude patterns.
	Exclude []string

	// Namespace qualifies rewritten imports, without the leading '@'
	// (e.g. "preview/mypkg" for builds, "gh-alice/mypkg" for installs).
	Namespace string

	// Version is the package version pinned into rewritten imports.
	Version string

	// Entrypoint is the manifest entrypoint path; its filename anchors
	// import rewriting.
	Entrypoint string
}

// Materialize copies the package tree at sourceDir into destDir,
// creating destDir if absent. Excluded entries are skipped along with
// their subtrees; typst.toml has schema annotation lines stripped; .typ
// files pass through the import rewriter; everything else is copied
// byte for byte. Destination parent directories are created on demand,
// so files appearing before their directory entry in the walk order are
// handled.
//
// The first failure aborts the pass with the offending path; partial
// output already written to destDir is not rolled back.
func Materialize(sourceDir, destDir string, opts Options) error {
	excluder, err := NewExcluder(sourceDir, opts.Exclude)
	if err != nil {
		return err
	}

	rewriter, err := NewRewriter(opts.Namespace, opts.Version, opts.Entrypoint)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create destination directory %s: %w", destDir, err)
	}

	return filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk source tree at %s: %w", path, err)
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s against %s: %w", path, sourceDir, err)
		}
		if rel == "." {
			return nil
		}

		if excluder.Excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		dst := filepath.Join(destDir, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", dst, err)
			}
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create parent directory for %s: %w", dst, err)
		}

		switch {
		case d.Name() == ManifestFilename:
			return writeStrippedManifest(path, dst)
		case filepath.Ext(path) == sourceExt:
			return writeRewrittenSource(path, dst, rewriter)
		default:
			return copyFile(path, dst)
		}
	})
}

// StripSchemaComments removes every line whose first non-blank
// characters are the #:schema annotation. All other lines are preserved
// verbatim, which makes the transform idempotent.
func StripSchemaComments(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), schemaCommentPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func writeStrippedManifest(src, dst string) error {
	content, err := readTextFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, []byte(StripSchemaComments(content)), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", dst, err)
	}
	return nil
}

func writeRewrittenSource(src, dst string, rewriter *Rewriter) error {
	content, err := readTextFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, []byte(rewriter.Rewrite(content)), 0o644); err != nil {
		return fmt.Errorf("write source file %s: %w", dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// readTextFile reads a file that will undergo text processing and
// rejects non-UTF-8 content up front.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file %s is not valid UTF-8", path)
	}
	return string(data), nil
}
