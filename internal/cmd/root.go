// Package cmd contains all CLI commands for platy.
package cmd

import (
	"fmt"
	"log"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of platy.
	Version = "0.1.0"

	// Global flags
	verbose      bool
	configPath   string
	schemeFlag   string
	outputFormat string
	forAgents    bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "platy",
	Short: "Generate Perl FFI::Platypus bindings from a Rust crate",
	Long: `platy extracts the FFI surface of a Rust compilation unit and renders
it as a Perl module that binds the surface with FFI::Platypus.

It parses the crate's lib.rs with tree-sitter, classifies exported
functions, C-style enums, plain-data records, and opaque handle types,
normalizes every Rust type into the FFI::Platypus type vocabulary, and
rewrites pointer-to-opaque signatures to bare handle names.

Classification schemes (--scheme, never mixed on one input):
  attribute   #[export] functions, #[record]/#[opaque] structs (default)
  implicit    pub extern "C" #[no_mangle] functions, repr(C) records,
              public structs without repr(C) are opaque

Examples:
  platy generate --name Acme::MyLib        # Extract and render bindings
  platy dump --format json                 # Print the extracted surface
  platy check                              # Extract only, report errors

See 'platy <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: platy.yaml)")
	rootCmd.PersistentFlags().StringVar(&schemeFlag, "scheme", "", "Classification scheme (attribute|implicit)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Serialization format (yaml|json)")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// logf prints progress output to stderr when --verbose is set.
func logf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// CommandInfo represents a command for agent discovery.
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
}

// FlagInfo represents a command flag for agent discovery.
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands.
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	output := map[string]any{
		"version":  Version,
		"commands": root.Subcommands,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

// buildCommandInfo recursively builds command metadata.
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
		Flags:       collectFlags(cmd.Flags()),
	}

	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
	}

	return info
}

// collectFlags gathers flag metadata from a flag set.
func collectFlags(flags *pflag.FlagSet) []FlagInfo {
	var infos []FlagInfo
	flags.VisitAll(func(f *pflag.Flag) {
		infos = append(infos, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})
	return infos
}
