// Package commands wires the daybook CLI.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/buildinfo"
	"github.com/daybook-dev/daybook/internal/client"
	"github.com/daybook-dev/daybook/internal/config"
	"github.com/daybook-dev/daybook/internal/ledger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "daybook",
		Short:   "Double-entry ledger with duplicate-aware CSV imports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "daybook.yaml", "config file path")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newLoadCommand(&configPath))
	rootCmd.AddCommand(newDumpCommand(&configPath))
	rootCmd.AddCommand(newClearCommand(&configPath))
	rootCmd.AddCommand(newBalanceCommand(&configPath))
	rootCmd.AddCommand(newBudgetCommand(&configPath))
	rootCmd.AddCommand(newExpenseCommand(&configPath))
	rootCmd.AddCommand(newConvertCommand())

	return rootCmd
}

// fetchLedger dumps the server's ledger through filter and replays it
// into a local one, so reports reflect exactly the filtered set.
func fetchLedger(cmd *cobra.Command, cfg *config.Config, filter client.DumpFilter) (*ledger.Ledger, error) {
	out, err := newClient(cfg).Dump(cmd.Context(), filter)
	if err != nil {
		return nil, err
	}

	led := ledger.New(cfg.Ledger.PrimaryCurrency, -1)
	if _, err := led.Load(strings.NewReader(out), "", nil, false); err != nil {
		return nil, fmt.Errorf("replaying dump: %w", err)
	}
	return led, nil
}

// filterFlags registers the shared dump-filter flags.
func filterFlags(cmd *cobra.Command, filter *client.DumpFilter) {
	cmd.Flags().StringVar(&filter.Start, "start", "", "earliest date to include")
	cmd.Flags().StringVar(&filter.End, "end", "", "latest date to include")
	cmd.Flags().StringSliceVar(&filter.Accounts, "accounts", nil, "only transactions touching these accounts")
	cmd.Flags().StringSliceVar(&filter.Types, "types", nil, "only transactions touching these account types")
	cmd.Flags().StringSliceVar(&filter.Tags, "tags", nil, "only transactions carrying one of these tags")
}

// loadConfig reads the config file named by the --config flag.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}

// newClient builds an HTTP client from the config's server section.
func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Server.URL(), cfg.Server.Username, cfg.Server.Password)
}
