// SPDX-License-Identifier: MPL-2.0

// Package typst drives the external Typst compiler binary.
package typst

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/input-output-hk/catalyst-forge-libs/executor"
)

// CLI invokes the typst binary found on PATH, or an explicit path from
// configuration.
type CLI struct {
	bin string
}

// NewCLI creates a compiler handle. An empty bin falls back to "typst".
func NewCLI(bin string) *CLI {
	if bin == "" {
		bin = "typst"
	}
	return &CLI{bin: bin}
}

// Version reports the compiler version by running `typst --version` and
// parsing its single line of output (e.g. "typst 0.13.1 (8dce676d)").
func (c *CLI) Version(ctx context.Context) (*semver.Version, error) {
	result, err := executor.New(c.bin, "--version").Execute(ctx)
	if err != nil {
		if result != nil && strings.TrimSpace(result.Stderr) != "" {
			return nil, fmt.Errorf("run %s --version: %s: %w", c.bin, strings.TrimSpace(result.Stderr), err)
		}
		return nil, fmt.Errorf("run %s --version: %w", c.bin, err)
	}
	return ParseVersionOutput(result.Stdout)
}

// ParseVersionOutput extracts the first whitespace-delimited token of
// the version report that parses as a semantic version.
func ParseVersionOutput(out string) (*semver.Version, error) {
	for _, tok := range strings.Fields(out) {
		if v, err := semver.NewVersion(tok); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unexpected typst --version output: %q", strings.TrimSpace(out))
}

// CompileOptions narrows a compile invocation.
type CompileOptions struct {
	// Root is the project root passed via --root; "." when empty.
	Root string

	// WorkDir is the working directory for the invocation.
	WorkDir string

	// Pages limits rendering to the first N pages; zero renders all.
	Pages int

	// Output is an explicit output target; empty lets typst derive it
	// from the entry filename.
	Output string
}

// Compile renders entry with the external compiler. A non-zero exit is
// fatal and the compiler's stdout and stderr are surfaced verbatim.
func (c *CLI) Compile(ctx context.Context, entry string, opts CompileOptions) error {
	root := opts.Root
	if root == "" {
		root = "."
	}

	args := []string{"compile", "--root", root}
	if opts.Pages > 0 {
		args = append(args, "--pages", strconv.Itoa(opts.Pages))
	}
	args = append(args, entry)
	if opts.Output != "" {
		args = append(args, opts.Output)
	}

	var execOpts []executor.Option
	if opts.WorkDir != "" {
		execOpts = append(execOpts, executor.WithWorkingDir(opts.WorkDir))
	}

	result, err := executor.New(c.bin, args...).Execute(ctx, execOpts...)
	if err != nil {
		if result != nil {
			return fmt.Errorf("compilation of %s failed\nstdout: %s\nstderr: %s", entry, result.Stdout, result.Stderr)
		}
		return fmt.Errorf("compile %s: %w", entry, err)
	}
	return nil
}
