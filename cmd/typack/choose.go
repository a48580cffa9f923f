// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"typack-cli/pkg/manifest"
)

// terminalChooser resolves ambiguous manifest locations by prompting
// the user with a numbered list and reading a 1-based selection.
type terminalChooser struct {
	in  io.Reader
	out io.Writer
}

func newTerminalChooser() *terminalChooser {
	return &terminalChooser{in: os.Stdin, out: os.Stdout}
}

// Choose prompts until a valid selection is entered and returns its
// zero-based index. Exhausted input before a valid selection is an
// error, never a default pick.
func (c *terminalChooser) Choose(candidates []string) (int, error) {
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Multiple %s files found. Please choose one to install:\n", manifest.Filename)
	for i, candidate := range candidates {
		fmt.Fprintf(c.out, "  %d: %s\n", i+1, candidate)
	}

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprintf(c.out, "Enter number (1-%d): ", len(candidates))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read selection: %w", err)
			}
			return 0, errors.New("input closed before a manifest was selected")
		}

		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(candidates) {
			fmt.Fprintf(c.out, "Invalid input. Please enter a number between 1 and %d.\n", len(candidates))
			continue
		}

		fmt.Fprintln(c.out, "Selected: "+candidates[n-1])
		return n - 1, nil
	}
}
