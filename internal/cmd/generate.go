// Package cmd implements the generate command for the platy CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anthropics/platy/internal/manifest"
	"github.com/anthropics/platy/internal/render"
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate [input.rs]",
	Short: "Extract the FFI surface and render Perl bindings",
	Long: `Generate parses the Rust input file, extracts its FFI surface, and
writes a Perl module binding that surface with FFI::Platypus.

The generation process:
  1. Parses the input with the tree-sitter Rust grammar
  2. Classifies declarations using the active scheme
  3. Translates every type into the FFI::Platypus vocabulary
  4. Rewrites pointer-to-opaque signatures to bare handle names
  5. Renders lib/<Package>.pm from the crate manifest and surface

Examples:
  platy generate --name Acme::MyLib               # Use configured input
  platy generate ffi/src/lib.rs --name My::Lib    # Explicit input
  platy generate --name My::Lib --dry-run         # Print instead of write`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

// Command-line flags
var (
	genName      string
	genDistName  string
	genCargoToml string
	genOutputDir string
	genDryRun    bool
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&genName, "name", "", "Perl package name for the generated module (required)")
	generateCmd.Flags().StringVar(&genDistName, "distname", "", "Distribution name (default: name with :: replaced by -)")
	generateCmd.Flags().StringVar(&genCargoToml, "cargo-toml", "", "Path to the crate manifest")
	generateCmd.Flags().StringVarP(&genOutputDir, "output", "o", "", "Output directory (default: from config)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print generated files instead of writing them")
	_ = generateCmd.MarkFlagRequired("name")
}

// runGenerate implements the generate command logic.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}

	lib, err := extractLibrary(cfg, input)
	if err != nil {
		return err
	}

	cargoPath := genCargoToml
	if cargoPath == "" {
		cargoPath = cfg.CargoToml
	}
	m, err := manifest.Load(cargoPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cargoPath, err)
	}

	renderer, err := render.New()
	if err != nil {
		return err
	}

	files, err := renderer.Files(lib, m, render.Options{
		Package:  genName,
		DistName: genDistName,
	})
	if err != nil {
		return err
	}

	outDir := genOutputDir
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	for relPath, contents := range files {
		if genDryRun {
			fmt.Printf("--- %s ---\n%s", relPath, contents)
			continue
		}
		dest := filepath.Join(outDir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(dest, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		logf("wrote %s", dest)
	}

	return nil
}
