package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthropics/platy/internal/config"
	"github.com/anthropics/platy/internal/extract"
	"github.com/anthropics/platy/internal/parser"
)

// loadConfig resolves the effective configuration, applying global
// flag overrides on top of platy.yaml (or defaults).
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load("")
	}
	if err != nil {
		return nil, err
	}

	if schemeFlag != "" {
		cfg.Scheme = schemeFlag
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractLibrary runs the full extraction pipeline for one input file:
// parse, walk, depointerize. Shared by generate, dump, and check.
func extractLibrary(cfg *config.Config, input string) (*extract.Library, error) {
	if input == "" {
		input = cfg.Input
	}
	if parser.LanguageFromExtension(filepath.Ext(input)) != parser.Rust {
		return nil, fmt.Errorf("input %s is not a Rust source file", input)
	}

	policy, err := extract.PolicyForScheme(cfg.Scheme)
	if err != nil {
		return nil, err
	}
	logf("extracting %s with %s scheme", input, policy.Name())

	p, err := parser.NewParser(parser.Rust)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	result, err := p.ParseFile(input)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	if result.HasErrors() {
		fmt.Fprintf(os.Stderr, "warning: %s contains syntax errors; extraction may be incomplete\n", input)
	}

	lib, err := extract.New(result, policy).Extract()
	if err != nil {
		return nil, err
	}

	lib.Depointerize()
	logf("extracted %d functions, %d enums, %d records, %d opaques",
		len(lib.Functions), len(lib.Enums), len(lib.Records), len(lib.Opaques))

	return lib, nil
}
