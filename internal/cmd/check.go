// Package cmd implements the check command for the platy CLI.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anthropics/platy/internal/extract"
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [input.rs]",
	Short: "Verify the FFI surface extracts cleanly",
	Long: `Check runs extraction without rendering and reports surface
statistics, or the first error. Exit status is non-zero when the
surface contains an unsupported construct or a malformed attribute,
which makes check usable as a pre-commit or CI gate.

Examples:
  platy check
  platy check ffi/src/lib.rs --scheme implicit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// runCheck implements the check command logic.
func runCheck(cmd *cobra.Command, args []string) error {
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
		var unsupported *extract.UnsupportedTypeError
		var malformed *extract.MalformedAttributeError
		if errors.As(err, &unsupported) || errors.As(err, &malformed) {
			return fmt.Errorf("surface check failed: %w", err)
		}
		return err
	}

	if lib.IsEmpty() {
		fmt.Println("no exported declarations found")
		return nil
	}

	fmt.Printf("ok: %d functions, %d enums, %d records, %d opaques\n",
		len(lib.Functions), len(lib.Enums), len(lib.Records), len(lib.Opaques))
	return nil
}
