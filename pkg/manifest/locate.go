// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Location is a resolved manifest: the file itself and its containing
// directory, which becomes the effective package source root.
type Location struct {
	ManifestPath string
	RootDir      string
}

// Chooser selects one entry from a list of candidate manifest paths.
// The CLI backs it with a terminal prompt; tests inject scripted
// selections.
type Chooser interface {
	// Choose returns the zero-based index of the selected candidate.
	Choose(candidates []string) (int, error)
}

// AmbiguousError reports that multiple manifests were found and no
// chooser was available to disambiguate. Unattended callers surface
// this instead of proceeding with an arbitrary pick.
type AmbiguousError struct {
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("found %d candidate manifests and no way to choose between them:\n  %s",
		len(e.Candidates), strings.Join(e.Candidates, "\n  "))
}

// Locate finds the package manifest under cloneRoot/subPath. A manifest
// directly at the expected location is authoritative and skips the
// search. Otherwise the tree is walked recursively: zero hits is a hard
// failure, a single hit resolves automatically, and multiple hits are
// put to the chooser with candidate paths reported relative to
// cloneRoot.
func Locate(cloneRoot, subPath string, chooser Chooser) (*Location, error) {
	searchRoot := filepath.Join(cloneRoot, filepath.FromSlash(subPath))

	direct := filepath.Join(searchRoot, Filename)
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return &Location{ManifestPath: direct, RootDir: searchRoot}, nil
	}

	var candidates []string
	_ = filepath.WalkDir(searchRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal; an empty result
			// set is reported below.
			return nil
		}
		if !d.IsDir() && d.Name() == Filename {
			candidates = append(candidates, path)
		}
		return nil
	})

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("no %s found directly or recursively in %s", Filename, searchRoot)
	case 1:
		return locationFor(candidates[0]), nil
	}

	rel := make([]string, len(candidates))
	for i, c := range candidates {
		r, err := filepath.Rel(cloneRoot, c)
		if err != nil {
			r = c
		}
		rel[i] = r
	}

	if chooser == nil {
		return nil, &AmbiguousError{Candidates: rel}
	}

	idx, err := chooser.Choose(rel)
	if err != nil {
		return nil, fmt.Errorf("select manifest: %w", err)
	}
	if idx < 0 || idx >= len(candidates) {
		return nil, fmt.Errorf("manifest selection %d is out of range 1-%d", idx+1, len(candidates))
	}
	return locationFor(candidates[idx]), nil
}

func locationFor(manifestPath string) *Location {
	return &Location{ManifestPath: manifestPath, RootDir: filepath.Dir(manifestPath)}
}
