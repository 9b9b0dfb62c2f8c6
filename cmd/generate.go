package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ThomasCrouzet/invgen/internal/config"
	"github.com/ThomasCrouzet/invgen/internal/inventory"
	"github.com/ThomasCrouzet/invgen/internal/logger"
	"github.com/ThomasCrouzet/invgen/internal/source"
	"github.com/ThomasCrouzet/invgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	inputFile   string
	outputFile  string
	serviceName string
	inputFormat string
	extraVars   []string
	verifyOut   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an Ansible inventory from a host export",
	Long: `Read every host record from the input, group hosts by datacenter and
server role under the service group, and write the inventory YAML.

Nothing is written if any record is invalid.`,
	Example: "  invgen generate -i hosts.csv -o inventory.yml -s platform",
	RunE:    runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to the input CSV or JSON file")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "path to the output YAML file")
	generateCmd.Flags().StringVarP(&serviceName, "service", "s", "", "service name used as the parent group")
	generateCmd.Flags().StringVar(&inputFormat, "format", "", "input format: csv, json (default: from file extension)")
	generateCmd.Flags().StringArrayVar(&extraVars, "var", nil, "extra variable on the all group, as key=value (repeatable)")
	generateCmd.Flags().BoolVar(&verifyOut, "verify", false, "check the result with ansible-inventory --graph (requires ansible)")
}

// stageError names the step of the run that failed.
type stageError struct {
	Title string
	Hint  string
	Err   error
}

func (e *stageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Title, e.Err)
}

func (e *stageError) Unwrap() error {
	return e.Err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'invgen init' to create a config file"))
		return err
	}

	if err := applyFlagOverrides(cfg); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid flags", err.Error(), "use --var key=value"))
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid log level", err.Error(), ""))
		return err
	}
	defer func() { _ = log.Sync() }()

	if _, err := generate(cfg, log); err != nil {
		var serr *stageError
		if errors.As(err, &serr) {
			fmt.Fprint(os.Stderr, ui.FormatError(serr.Title, serr.Err.Error(), serr.Hint))
		}
		return err
	}

	ui.Success(fmt.Sprintf("Ansible inventory file '%s' created successfully with service name '%s'.", cfg.Output, cfg.Service))

	if verifyOut {
		if err := verifyInventory(cfg.Output); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Verification failed", err.Error(), "install ansible-core to get ansible-inventory"))
			return err
		}
	}

	return nil
}

// generate runs the whole conversion. The output file is only created once
// every record has been read and the inventory has been encoded.
func generate(cfg *config.Config, log logger.Logger) (*inventory.Inventory, error) {
	if strings.TrimSpace(cfg.Service) == "" {
		return nil, &stageError{Title: "Missing service name", Hint: "pass --service or set service in invgen.yml", Err: inventory.ErrEmptyService}
	}
	if cfg.Output == "" {
		return nil, &stageError{Title: "Missing output path", Hint: "pass --output or set output in invgen.yml", Err: errors.New("output is empty")}
	}

	records, err := source.Load(cfg.Input, cfg.Format)
	if err != nil {
		return nil, &stageError{Title: "Failed to read input", Hint: "every record needs a non-empty Name", Err: err}
	}
	log.Debug("loaded records", logger.String("input", cfg.Input), logger.Int("records", len(records)))
	ui.StageDone("Read input", fmt.Sprintf("%s (%d records)", cfg.Input, len(records)))

	inv, err := inventory.Build(cfg.Service, records)
	if err != nil {
		return nil, &stageError{Title: "Failed to build inventory", Err: err}
	}
	for k, v := range cfg.Vars {
		if err := inv.SetVar(k, v); err != nil {
			return nil, &stageError{Title: "Invalid variable", Hint: "service_name is set from the service name", Err: err}
		}
	}
	log.Debug("built inventory",
		logger.Int("datacenters", len(inv.Datacenters())),
		logger.Int("groups", len(inv.Groups())),
		logger.Int("hosts", inv.HostCount()),
	)
	ui.StageDone("Built inventory", fmt.Sprintf("(%d datacenters, %d groups, %d hosts)", len(inv.Datacenters()), len(inv.Groups()), inv.HostCount()))

	data, err := inventory.Encode(inv)
	if err != nil {
		return nil, &stageError{Title: "Failed to encode inventory", Err: err}
	}
	ui.StageDone("Encoded YAML", fmt.Sprintf("(%d bytes)", len(data)))

	if err := inventory.WriteFile(cfg.Output, data); err != nil {
		return nil, &stageError{Title: "Failed to write output", Hint: "check that the output directory exists and is writable", Err: err}
	}
	log.Info("wrote inventory", logger.String("output", cfg.Output), logger.Int("bytes", len(data)))
	ui.StageDone("Wrote output", cfg.Output)

	return inv, nil
}

func applyFlagOverrides(cfg *config.Config) error {
	if inputFile != "" {
		cfg.Input = inputFile
	}
	if outputFile != "" {
		cfg.Output = outputFile
	}
	if serviceName != "" {
		cfg.Service = serviceName
	}
	if inputFormat != "" {
		cfg.Format = inputFormat
	}
	vars, err := parseVars(extraVars)
	if err != nil {
		return err
	}
	if len(vars) > 0 && cfg.Vars == nil {
		cfg.Vars = make(map[string]string, len(vars))
	}
	for k, v := range vars {
		cfg.Vars[k] = v
	}
	return nil
}

func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", p)
		}
		vars[k] = v
	}
	return vars, nil
}

func verifyInventory(path string) error {
	bin, err := findExecutable("ansible-inventory")
	if err != nil {
		return fmt.Errorf("ansible-inventory not found in PATH")
	}

	c := execCommand(bin, "-i", path, "--graph")
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	if err := c.Run(); err != nil {
		return fmt.Errorf("ansible-inventory: %w", err)
	}
	return nil
}
