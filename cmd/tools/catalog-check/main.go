// cmd/tools/catalog-check/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"acord-intake/internal/acord"
	"acord-intake/internal/catalog"
	"acord-intake/internal/common/config"
	"acord-intake/pkg/acordspec"
)

func main() {
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)
	specCmd := flag.NewFlagSet("spec", flag.ExitOnError)

	// Check command flags
	overridePath := checkCmd.String("spec", "", "Form spec override file to apply before checking")
	configPath := checkCmd.String("config", "", "Server config file; its form spec path is used when -spec is not given")
	verbose := checkCmd.Bool("v", false, "Print each check group as it runs")

	// Spec command flags
	specPath := specCmd.String("path", "", "Path to the form spec file to validate")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkCmd.Parse(os.Args[2:])

		specSource := *overridePath
		if specSource == "" && *configPath != "" {
			cfg, err := config.LoadFromFile(*configPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			specSource = cfg.Acord.FormSpecPath
		}

		formCatalog := acord.NewFormCatalog()
		if specSource != "" {
			specFile, err := acordspec.Load(specSource)
			if err != nil {
				fmt.Printf("Error loading form spec override: %v\n", err)
				os.Exit(1)
			}
			if err := specFile.Validate(); err != nil {
				fmt.Printf("Error validating form spec override: %v\n", err)
				os.Exit(1)
			}
			applied := specFile.Apply(formCatalog)
			fmt.Printf("Applied %d form spec overrides from %s\n", applied, specSource)
		}

		cat := catalog.New()
		if *verbose {
			fmt.Printf("Cross-checking %d coverage types against %d form field mappings...\n",
				len(cat.List("")), len(formCatalog.FormTypes()))
		}
		issues := acord.CrossCheck(cat, formCatalog)
		if len(issues) > 0 {
			fmt.Printf("Catalog check failed with %d issue(s):\n", len(issues))
			for _, issue := range issues {
				fmt.Printf("  - %s\n", issue)
			}
			os.Exit(1)
		}
		fmt.Println("Catalog check passed.")

	case "spec":
		specCmd.Parse(os.Args[2:])
		if *specPath == "" {
			fmt.Println("Error: path is required for spec.")
			specCmd.Usage()
			os.Exit(1)
		}
		specFile, err := acordspec.Load(*specPath)
		if err != nil {
			fmt.Printf("Spec validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := specFile.Validate(); err != nil {
			fmt.Printf("Spec validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Spec validation passed. Found %d form(s), version %s.\n", len(specFile.Forms), specFile.Version)

	case "help":
		fallthrough
	default:
		help()
	}
}

func help() {
	fmt.Print(`
Usage: catalog-check <command> [flags]

Commands:
  check   Cross-check the coverage catalog against the form field mappings
  spec    Validate a form spec override file on its own
  help    Show this help message

Examples:
  catalog-check check
  catalog-check check -spec configs/form-specs.json -v
  catalog-check check -config configs/config.yaml
  catalog-check spec -path configs/form-specs.json

Use 'catalog-check <command> -h' for more information about a command.

`)
}
