package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/cmdb"
	"github.com/ThomasCrouzet/invgen/internal/config"
	"github.com/ThomasCrouzet/invgen/internal/source"
	"github.com/ThomasCrouzet/invgen/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate your invgen.yml configuration",
	Long: `Check that the configured input exists and has a known format, that a
service name is set, that the output directory exists, and that the CMDB
credentials file (if any) is complete.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'invgen init' to create a config file"))
		return err
	}

	fmt.Println(ui.Bold("Validating invgen.yml..."))

	passed, errs := validateConfig(cfg)
	for _, c := range passed {
		ui.ValidationOK(c.Field, c.Detail)
	}
	for _, ve := range errs {
		ui.ValidationErr(ve.Field, ve.Message, ve.Suggestion)
	}

	fmt.Println()
	if len(errs) == 0 {
		ui.Success(fmt.Sprintf("%d checks passed, 0 errors", len(passed)))
		return nil
	}
	fmt.Printf("%d checks passed, %d errors\n", len(passed), len(errs))
	return fmt.Errorf("%d validation errors", len(errs))
}

// passedCheck is a configuration field that validated cleanly.
type passedCheck struct {
	Field  string
	Detail string
}

// validateConfig returns the checks that passed and the problems found.
func validateConfig(cfg *config.Config) ([]passedCheck, []source.ValidationError) {
	var passed []passedCheck

	errs := source.Validate(cfg.Input, cfg.Format)
	failed := make(map[string]bool)
	for _, ve := range errs {
		failed[ve.Field] = true
	}
	if !failed["input"] {
		passed = append(passed, passedCheck{Field: "input", Detail: cfg.Input})
	}
	if cfg.Input != "" && !failed["format"] {
		if src, err := source.Resolve(cfg.Input, cfg.Format); err == nil {
			passed = append(passed, passedCheck{Field: "format", Detail: src.Metadata().DisplayName})
		}
	}

	if strings.TrimSpace(cfg.Service) == "" {
		errs = append(errs, source.ValidationError{
			Field:      "service",
			Message:    "service is required",
			Suggestion: "set service in invgen.yml or pass --service to generate",
		})
	} else {
		passed = append(passed, passedCheck{Field: "service", Detail: cfg.Service})
	}

	dir := filepath.Dir(cfg.Output)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		errs = append(errs, source.ValidationError{
			Field:      "output",
			Message:    fmt.Sprintf("directory not found: %s", dir),
			Suggestion: "create the directory or change output",
		})
	} else {
		passed = append(passed, passedCheck{Field: "output", Detail: cfg.Output})
	}

	if cfg.Lookup.Credentials != "" {
		if creds, err := cmdb.LoadCredentials(cfg.Lookup.Credentials); err != nil {
			errs = append(errs, source.ValidationError{
				Field:      "lookup.credentials",
				Message:    err.Error(),
				Suggestion: "expected endpoint, username and password on three lines",
			})
		} else {
			passed = append(passed, passedCheck{Field: "lookup.credentials", Detail: creds.Endpoint})
		}
	}

	if _, ok := cfg.Vars["service_name"]; ok {
		errs = append(errs, source.ValidationError{
			Field:      "vars.service_name",
			Message:    "service_name is reserved",
			Suggestion: "remove it; it is set from the service name",
		})
	} else {
		passed = append(passed, passedCheck{Field: "vars", Detail: fmt.Sprintf("%d extra", len(cfg.Vars))})
	}

	return passed, errs
}
