// SPDX-License-Identifier: MPL-2.0

package materialize

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// Rewriter rewrites relative self-imports of the package entrypoint into
// canonical package-qualified imports, turning
//
//	#import "../../main.typ: rule"
//
// into
//
//	#import "@preview/mypkg:1.0.0: rule"
//
// This is a pure text transform anchored on the entrypoint filename
// preceded by one or more "../" segments; it does not parse Typst
// grammar. A project whose other files share the entrypoint's basename
// can be over-matched — projects are expected to follow the relative
// self-import convention.
type Rewriter struct {
	re          *regexp.Regexp
	replacement string
}

// NewRewriter builds a rewriter for the given package. namespace is the
// full qualifier without the leading '@' (e.g. "preview/mypkg" or
// "gh-alice/mypkg"); entrypoint may be a relative path, of which only
// the final element participates in matching.
func NewRewriter(namespace, version, entrypoint string) (*Rewriter, error) {
	name := filepath.Base(filepath.FromSlash(entrypoint))
	if name == "." || name == "/" || name == "" {
		return nil, fmt.Errorf("invalid entrypoint name: %s", entrypoint)
	}

	re, err := regexp.Compile(`#import\s+"(?:\.\./)+` + regexp.QuoteMeta(name) + `((?::\s*[^"]*)?)"`)
	if err != nil {
		return nil, fmt.Errorf("compile import pattern for %q: %w", name, err)
	}

	return &Rewriter{
		re:          re,
		replacement: fmt.Sprintf(`#import "@%s:%s${1}"`, namespace, version),
	}, nil
}

// Rewrite returns content with every matching self-import replaced. The
// optional import-narrowing selector (": names") is preserved verbatim.
// Non-matching imports and all other content are left untouched.
func (r *Rewriter) Rewrite(content string) string {
	return r.re.ReplaceAllString(content, r.replacement)
}
