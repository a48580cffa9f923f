// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"typack-cli/internal/config"
	"typack-cli/pkg/store"

	"github.com/spf13/cobra"
)

var (
	listLocal   bool
	listPreview bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Long: `List installed Typst packages.

Without flags both stores are listed: the persistent data directory
and the preview cache the compiler populates on demand. Packages are
printed as import specs, e.g. "@gh-alice/widgets:1.0.0".`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listLocal, "local", false, "list only the persistent data directory")
	listCmd.Flags().BoolVar(&listPreview, "preview", false, "list only the preview cache")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	all := !listLocal && !listPreview

	if listLocal || all {
		if err := printStore("Local packages", cfg.DataDir); err != nil {
			return err
		}
	}
	if listPreview || all {
		if err := printStore("Preview packages", cfg.CacheDir); err != nil {
			return err
		}
	}
	return nil
}

func printStore(title, root string) error {
	fmt.Println(TitleStyle.Render(title) + SubtitleStyle.Render(" ("+root+")"))

	installed, err := store.ListRoot(root)
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		fmt.Println(SubtitleStyle.Render("  No packages installed."))
		return nil
	}
	for _, pkg := range installed {
		fmt.Println("  " + pkg.Spec())
	}
	return nil
}
