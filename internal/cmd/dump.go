// Package cmd implements the dump command for the platy CLI.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anthropics/platy/internal/render"
)

// dumpCmd represents the dump command.
var dumpCmd = &cobra.Command{
	Use:   "dump [input.rs]",
	Short: "Print the extracted FFI surface model",
	Long: `Dump runs extraction and prints the finalized Library model to
stdout. Output is deterministic and diffable: declaration order is
preserved and pointer-to-opaque rewriting has already been applied.

Examples:
  platy dump                       # YAML, configured input
  platy dump --format json         # JSON instead
  platy dump ffi/src/lib.rs        # Explicit input`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// runDump implements the dump command logic.
func runDump(cmd *cobra.Command, args []string) error {
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

	data, err := render.MarshalLibrary(lib, cfg.Output.Format)
	if err != nil {
		return err
	}

	fmt.Print(string(data))
	return nil
}
