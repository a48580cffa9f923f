// SPDX-License-Identifier: MPL-2.0

// Package store resolves and enumerates the local Typst package store.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"typack-cli/pkg/gitsrc"
)

// packagesDir is the subdirectory holding namespaced packages under
// each store root.
const packagesDir = "packages"

// Store addresses the two per-environment package roots: DataDir for
// persistent installs and CacheDir for preview-style installs. Both are
// explicit inputs so the pipeline can be exercised with injected roots.
type Store struct {
	DataDir  string
	CacheDir string
}

// Namespace combines the provider abbreviation with the owner, e.g.
// "gh-alice" for a package installed from github.com/alice.
func Namespace(providerHost, owner string) string {
	return gitsrc.Abbrev(providerHost) + "-" + owner
}

// InstallPath derives the install directory for a package acquired from
// a Git provider: {data}/packages/{abbrev}-{owner}/{name}/{version}.
// The path is deterministic; an existing directory there is a prior
// install and is overwritten in place.
func (s *Store) InstallPath(providerHost, owner, name, version string) string {
	return filepath.Join(s.DataDir, packagesDir, Namespace(providerHost, owner), name, version)
}

// Installed identifies one installed package version.
type Installed struct {
	Namespace string
	Name      string
	Version   string
}

// Spec returns the Typst import spec, e.g. "@gh-alice/widgets:1.0.0".
func (p Installed) Spec() string {
	return fmt.Sprintf("@%s/%s:%s", p.Namespace, p.Name, p.Version)
}

// ListRoot enumerates {root}/packages/{namespace}/{package}/{version}
// directories. A missing root yields an empty listing, not an error.
func ListRoot(root string) ([]Installed, error) {
	packagesRoot := filepath.Join(root, packagesDir)
	if info, err := os.Stat(packagesRoot); err != nil || !info.IsDir() {
		return nil, nil
	}

	var installed []Installed
	namespaces, err := os.ReadDir(packagesRoot)
	if err != nil {
		return nil, fmt.Errorf("read packages directory %s: %w", packagesRoot, err)
	}
	for _, ns := range namespaces {
		if !ns.IsDir() {
			continue
		}
		nsPath := filepath.Join(packagesRoot, ns.Name())
		packages, err := os.ReadDir(nsPath)
		if err != nil {
			return nil, fmt.Errorf("read namespace directory %s: %w", nsPath, err)
		}
		for _, pkg := range packages {
			if !pkg.IsDir() {
				continue
			}
			pkgPath := filepath.Join(nsPath, pkg.Name())
			versions, err := os.ReadDir(pkgPath)
			if err != nil {
				return nil, fmt.Errorf("read package directory %s: %w", pkgPath, err)
			}
			for _, ver := range versions {
				if !ver.IsDir() {
					continue
				}
				installed = append(installed, Installed{
					Namespace: ns.Name(),
					Name:      pkg.Name(),
					Version:   ver.Name(),
				})
			}
		}
	}
	return installed, nil
}
