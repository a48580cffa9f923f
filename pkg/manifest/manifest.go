// SPDX-License-Identifier: MPL-2.0

// Package manifest models the typst.toml package manifest and locates
// it inside acquired source trees.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// Filename is the fixed manifest filename.
	Filename = "typst.toml"

	// DefaultEntrypoint is used when the manifest does not configure one.
	DefaultEntrypoint = "main.typ"
)

// Manifest is the deserialized typst.toml.
type Manifest struct {
	Package  Package   `toml:"package"`
	Template *Template `toml:"template,omitempty"`
}

// Package is the required [package] section.
type Package struct {
	Name       string   `toml:"name"`
	Version    string   `toml:"version"`
	Entrypoint string   `toml:"entrypoint,omitempty"`
	Exclude    []string `toml:"exclude,omitempty"`
	Compiler   string   `toml:"compiler,omitempty"`
}

// Template is the optional [template] section used when a package ships
// a document template.
type Template struct {
	Path       string `toml:"path,omitempty"`
	Entrypoint string `toml:"entrypoint,omitempty"`
	Thumbnail  string `toml:"thumbnail,omitempty"`
}

// Entrypoint returns the configured entrypoint, defaulting to main.typ.
func (m *Manifest) Entrypoint() string {
	if m.Package.Entrypoint != "" {
		return m.Package.Entrypoint
	}
	return DefaultEntrypoint
}

// Load reads and parses the manifest at path. A parse failure is a
// fatal configuration error carrying the offending file path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if m.Package.Name == "" || m.Package.Version == "" {
		return nil, fmt.Errorf("manifest %s: package.name and package.version are required", path)
	}

	return &m, nil
}

// ResolvePath accepts either a manifest file or a directory containing
// one and returns the manifest file path.
func ResolvePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("path is neither a file nor a directory: %s", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	candidate := filepath.Join(path, Filename)
	if _, err := os.Stat(candidate); err != nil {
		return "", fmt.Errorf("no %s found in directory: %s", Filename, path)
	}
	return candidate, nil
}

// ValidatePackageDir enforces the convention that a package directory
// carries the package's name.
func ValidatePackageDir(name, dir string) error {
	parent := filepath.Base(dir)
	if name != parent {
		return fmt.Errorf("package name %q does not match its directory name %q", name, parent)
	}
	return nil
}
