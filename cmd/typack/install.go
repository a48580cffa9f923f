// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"typack-cli/internal/config"
	"typack-cli/internal/issue"
	"typack-cli/pkg/gitsrc"
	"typack-cli/pkg/manifest"
	"typack-cli/pkg/materialize"
	"typack-cli/pkg/store"
	"typack-cli/pkg/typst"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// installNoInput disables the interactive manifest prompt; ambiguous
// repositories then fail with the candidate list instead of blocking.
var installNoInput bool

var installCmd = &cobra.Command{
	Use:   "install <git-source>",
	Short: "Install a package from a Git hosting provider",
	Long: `Install a Typst package straight from a Git hosting provider.

The source may be a shorthand alias or a full browse URL:

  typack install gh/alice/widgets
  typack install gl/alice/widgets/packages/widgets
  typack install https://github.com/alice/widgets/tree/v2.1.0/pkg
  typack install https://gitlab.com/alice/widgets/-/tree/main/pkg

The repository is shallow-cloned at the referenced branch or tag, the
package manifest is located (prompting when several are present), and
the package is materialized into the local Typst data directory under
a {provider}-{owner} namespace.`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installNoInput, "no-input", false, "never prompt; fail when multiple manifests are found")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	reference := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Attempting to install from: " + CmdStyle.Render(reference))
	src, err := gitsrc.Resolve(reference)
	if err != nil {
		return err
	}
	log.Debug("resolved source", "clone_url", src.CloneURL, "ref", src.Ref, "path", src.PathInRepo)

	cloneDir, err := os.MkdirTemp("", "typack-git-")
	if err != nil {
		return fmt.Errorf("create temporary clone directory: %w", err)
	}
	defer os.RemoveAll(cloneDir)

	fmt.Printf("Cloning %s...\n", src.CloneURL)
	if err := gitsrc.NewFetcher().CloneShallow(ctx, src, cloneDir); err != nil {
		return issue.NewErrorContext().
			WithOperation("clone repository").
			WithResource(src.CloneURL).
			WithSuggestion("Check that the repository (and the referenced branch or tag) exists").
			WithSuggestion("Set GITHUB_TOKEN or GITLAB_TOKEN for private repositories").
			Wrap(err).
			BuildError()
	}

	var chooser manifest.Chooser
	if !installNoInput {
		chooser = newTerminalChooser()
	}
	loc, err := manifest.Locate(cloneDir, src.PathInRepo, chooser)
	if err != nil {
		return err
	}

	m, err := manifest.Load(loc.ManifestPath)
	if err != nil {
		return err
	}
	fmt.Printf("Found package: %s v%s\n", CmdStyle.Render(m.Package.Name), m.Package.Version)

	if m.Package.Compiler != "" {
		current, err := typst.NewCLI(cfg.TypstBin).Version(ctx)
		if err != nil {
			return err
		}
		if err := typst.CheckCompiler(m.Package.Compiler, current); err != nil {
			return err
		}
		fmt.Printf("Typst version check passed (required: %s, current: %s).\n", m.Package.Compiler, current)
	}

	st := &store.Store{DataDir: cfg.DataDir, CacheDir: cfg.CacheDir}
	installDir := st.InstallPath(src.Host, src.Owner, m.Package.Name, m.Package.Version)
	if info, err := os.Stat(installDir); err == nil && info.IsDir() {
		fmt.Println(WarningStyle.Render(fmt.Sprintf(
			"Package %s v%s is already installed; overwriting.", m.Package.Name, m.Package.Version)))
	}

	fmt.Println("Installing to: " + installDir)
	namespace := store.Namespace(src.Host, src.Owner)
	err = materialize.Materialize(loc.RootDir, installDir, materialize.Options{
		Exclude:    m.Package.Exclude,
		Namespace:  namespace + "/" + m.Package.Name,
		Version:    m.Package.Version,
		Entrypoint: m.Entrypoint(),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Package '%s' v%s installed successfully.", m.Package.Name, m.Package.Version)))
	fmt.Println("Import it with: " + CmdStyle.Render(fmt.Sprintf("#import \"@%s/%s:%s\": ...", namespace, m.Package.Name, m.Package.Version)))
	return nil
}
