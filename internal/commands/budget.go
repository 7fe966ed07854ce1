package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/budget"
	"github.com/daybook-dev/daybook/internal/client"
)

func newBudgetCommand(configPath *string) *cobra.Command {
	var filter client.DumpFilter

	cmd := &cobra.Command{
		Use:   "budget <budget.yaml> [budget.yaml...]",
		Short: "Compare budgets against actual balances",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			led, err := fetchLedger(cmd, cfg, filter)
			if err != nil {
				return err
			}

			b, err := budget.LoadFiles(args)
			if err != nil {
				return err
			}
			deltas := b.Deltas(led.Accounts(), led.PrimaryCurrency())

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACCOUNT\tEXPECTED")
			for _, name := range b.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, b[name])
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "ACCOUNT\tDIFFERENCE")
			for _, name := range deltas.Names() {
				fmt.Fprintf(w, "%s\t%s\n", name, deltas[name])
			}
			return w.Flush()
		},
	}

	filterFlags(cmd, &filter)

	return cmd
}
