// Command appsyncgen generates Go model code from an AppSync GraphQL schema.
//
// It looks for a .appsyncgen.yml config in the current directory (walking up
// to parent directories), parses the schema it names, and writes the
// generated types, enums and operation manifest to the configured output.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/graphsmith/appsync/codegen"
	"github.com/graphsmith/appsync/config"
	"github.com/graphsmith/appsync/registry"
)

const version = "0.1.0"

var (
	versionOption = flag.Bool("version", false, "print appsyncgen version")
	configOption  = flag.String("config", "", "path to config file (default: search for .appsyncgen.yml)")
)

func main() {
	flag.Parse()

	if *versionOption {
		fmt.Printf("appsyncgen v%s\n", version)

		return
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := *configOption
	if cfgFile == "" {
		var err error
		cfgFile, err = config.FindConfigFile(".")
		if err != nil {
			return fmt.Errorf("failed to find config file: %w", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	model, err := cfg.LoadModel()
	if err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}
	for _, w := range model.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	reg, err := registry.New(model, cfg.Mode())
	if err != nil {
		return fmt.Errorf("failed to build registry: %w", err)
	}

	if err := codegen.New(cfg, reg).Write(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
