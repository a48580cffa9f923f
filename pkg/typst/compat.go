// SPDX-License-Identifier: MPL-2.0

package typst

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// CheckCompiler verifies a manifest's compiler requirement (a version
// range expression such as "^0.13" or ">=0.12.0 <0.14.0") against the
// available compiler version. An empty requirement trivially holds; a
// requirement that does not parse is a manifest-format error.
func CheckCompiler(required string, current *semver.Version) error {
	if required == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(required)
	if err != nil {
		return fmt.Errorf("invalid compiler version requirement %q: %w", required, err)
	}

	if !constraint.Check(current) {
		return fmt.Errorf("package requires Typst version %s but the current compiler is %s", required, current)
	}
	return nil
}
