// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"slices"

	"typack-cli/internal/config"
	"typack-cli/pkg/manifest"
	"typack-cli/pkg/materialize"
	"typack-cli/pkg/typst"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// buildOutputDir selects the build destination root.
	buildOutputDir string
	// buildNamespace is the namespace written into rewritten imports.
	buildNamespace string
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build a package into its distributable layout",
	Long: `Build a Typst package into its distributable, version-pinned layout.

The path may point at a typst.toml file or at a directory containing
one; it defaults to the current directory. The package is written to
{output}/{name}/{version} with schema comment lines stripped and
relative self-imports rewritten to namespaced package imports. If the
manifest declares a template, its entrypoint is compiled up front so a
broken template fails the build, and a thumbnail is rendered when one
is configured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "output", `output root, either "output" or "universe"`)
	buildCmd.Flags().StringVarP(&buildNamespace, "namespace", "n", "preview", "namespace for rewritten imports")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if buildOutputDir != "output" && buildOutputDir != "universe" {
		return fmt.Errorf("invalid --output value %q: must be \"output\" or \"universe\"", buildOutputDir)
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	manifestPath, err := manifest.ResolvePath(path)
	if err != nil {
		return err
	}
	packageDir, err := filepath.Abs(filepath.Dir(manifestPath))
	if err != nil {
		return fmt.Errorf("resolve package directory: %w", err)
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	if err := manifest.ValidatePackageDir(m.Package.Name, packageDir); err != nil {
		return err
	}
	fmt.Printf("Building package: %s v%s\n", CmdStyle.Render(m.Package.Name), m.Package.Version)

	compiler := typst.NewCLI(cfg.TypstBin)

	if m.Package.Compiler != "" {
		current, err := compiler.Version(ctx)
		if err != nil {
			return err
		}
		if err := typst.CheckCompiler(m.Package.Compiler, current); err != nil {
			return err
		}
		fmt.Printf("Typst version check passed (required: %s, current: %s).\n", m.Package.Compiler, current)
	}

	if err := compileTemplate(cmd, compiler, m, packageDir); err != nil {
		return err
	}

	destDir := filepath.Join(buildOutputDir, m.Package.Name, m.Package.Version)
	fmt.Println("Writing to: " + destDir)

	// The output root must never be swept into its own build when it
	// lives inside the package directory.
	exclude := m.Package.Exclude
	if !slices.Contains(exclude, buildOutputDir) {
		exclude = append(slices.Clone(exclude), buildOutputDir)
	}

	err = materialize.Materialize(packageDir, destDir, materialize.Options{
		Exclude:    exclude,
		Namespace:  buildNamespace + "/" + m.Package.Name,
		Version:    m.Package.Version,
		Entrypoint: m.Entrypoint(),
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(SuccessStyle.Render(fmt.Sprintf("Package '%s' v%s built successfully.", m.Package.Name, m.Package.Version)))
	return nil
}

// compileTemplate compiles the declared template entrypoint (and its
// thumbnail, when configured) from the parent of the package directory,
// mirroring the layout the Typst compiler sees after installation.
func compileTemplate(cmd *cobra.Command, compiler *typst.CLI, m *manifest.Manifest, packageDir string) error {
	t := m.Template
	if t == nil {
		return nil
	}

	if t.Path == "" {
		fmt.Println(WarningStyle.Render("Template path is declared but empty; skipping template compilation."))
		return nil
	}
	if t.Entrypoint == "" {
		fmt.Println(WarningStyle.Render("Template entrypoint is declared but empty; skipping template compilation."))
		return nil
	}

	ctx := cmd.Context()
	workDir := filepath.Dir(packageDir)
	entry := filepath.Join(m.Package.Name, t.Path, t.Entrypoint)

	fmt.Println("Compiling template: " + CmdStyle.Render(entry))
	log.Debug("compiling template", "entry", entry, "workdir", workDir)
	if err := compiler.Compile(ctx, entry, typst.CompileOptions{WorkDir: workDir}); err != nil {
		return err
	}

	if t.Thumbnail == "" {
		return nil
	}

	thumbnail := filepath.Join(m.Package.Name, t.Thumbnail)
	fmt.Println("Generating thumbnail: " + CmdStyle.Render(thumbnail))
	return compiler.Compile(ctx, entry, typst.CompileOptions{
		WorkDir: workDir,
		Pages:   1,
		Output:  thumbnail,
	})
}
