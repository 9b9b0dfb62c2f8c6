package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ThomasCrouzet/invgen/internal/cmdb"
	"github.com/ThomasCrouzet/invgen/internal/config"
	"github.com/ThomasCrouzet/invgen/internal/logger"
	"github.com/ThomasCrouzet/invgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	lookupConcurrency int
	lookupRate        float64
	lookupTimeout     time.Duration
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <mac_file> [credentials_file]",
	Short: "Fetch CMDB records from ServiceNow by MAC address",
	Long: `Look up each MAC address (one per line) in the ServiceNow cmdb_ci table and
print the response as JSON.

The credentials file holds the instance URL, username and password on three
lines. It can also be set as lookup.credentials in invgen.yml.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().IntVar(&lookupConcurrency, "concurrency", 0, "number of lookups in flight")
	lookupCmd.Flags().Float64Var(&lookupRate, "rate", 0, "maximum requests per second (0 = unlimited)")
	lookupCmd.Flags().DurationVar(&lookupTimeout, "timeout", 0, "timeout per request")
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'invgen init' to create a config file"))
		return err
	}

	credsPath := cfg.Lookup.Credentials
	if len(args) > 1 {
		credsPath = args[1]
	}
	if credsPath == "" {
		err := fmt.Errorf("no credentials file")
		fmt.Fprint(os.Stderr, ui.FormatError("Missing credentials", err.Error(), "pass it as the second argument or set lookup.credentials"))
		return err
	}
	applyLookupOverrides(&cfg.Lookup)

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid log level", err.Error(), ""))
		return err
	}
	defer func() { _ = log.Sync() }()

	creds, err := cmdb.LoadCredentials(credsPath)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to read credentials", err.Error(), "expected endpoint, username and password on three lines"))
		return err
	}

	macs, err := cmdb.LoadMACs(args[0])
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to read MAC addresses", err.Error(), ""))
		return err
	}

	client := cmdb.NewClient(creds, cfg.Lookup.Timeout, cfg.Lookup.Concurrency, cfg.Lookup.RatePerSecond)
	client.Log = log
	log.Debug("starting lookups", logger.Int("macs", len(macs)), logger.String("endpoint", creds.Endpoint))

	results, err := client.LookupAll(cmd.Context(), macs)
	printResults(os.Stdout, results)
	if n := countFailed(results); n > 0 {
		ui.Warn(fmt.Sprintf("%d of %d MAC addresses could not be looked up", n, len(results)))
	}
	return err
}

func applyLookupOverrides(lc *config.LookupConfig) {
	if lookupConcurrency > 0 {
		lc.Concurrency = lookupConcurrency
	}
	if lookupRate > 0 {
		lc.RatePerSecond = lookupRate
	}
	if lookupTimeout > 0 {
		lc.Timeout = lookupTimeout
	}
}

func countFailed(results []cmdb.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// printResults writes each response as indented JSON, in input order.
func printResults(w io.Writer, results []cmdb.Result) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "Failed to fetch information for MAC address %s: %v\n", r.MAC, r.Err)
			continue
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, r.Data, "", "    "); err != nil {
			fmt.Fprintf(w, "Failed to fetch information for MAC address %s: %v\n", r.MAC, err)
			continue
		}
		buf.WriteByte('\n')
		_, _ = w.Write(buf.Bytes())
	}
}
