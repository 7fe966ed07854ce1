package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/client"
)

func newBalanceCommand(configPath *string) *cobra.Command {
	var filter client.DumpFilter

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print per-account balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			led, err := fetchLedger(cmd, cfg, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tCURRENCY\tBALANCE")
			for _, acct := range led.Accounts() {
				for _, cur := range acct.Currencies() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", acct.Name, cur, acct.Balance(cur).String())
				}
			}
			return w.Flush()
		},
	}

	filterFlags(cmd, &filter)

	return cmd
}
