// SPDX-License-Identifier: MPL-2.0

// typack builds, installs, and lists Typst packages.
package main

import (
	cmd "typack-cli/cmd/typack"
)

func main() {
	cmd.Execute()
}
