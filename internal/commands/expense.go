package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/client"
	"github.com/daybook-dev/daybook/internal/dates"
	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
)

func newExpenseCommand(configPath *string) *cobra.Command {
	var filter client.DumpFilter

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Summarize income and expenses, defaulting to the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter.Start == "" && filter.End == "" {
				now := time.Now()
				first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
				filter.Start = first.Format(dates.Format)
			}
			if len(filter.Types) == 0 {
				filter.Types = []string{"expense", "income"}
			}

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			led, err := fetchLedger(cmd, cfg, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			// Income accounts accumulate negative balances; flip the sign
			// so the table reads as money earned.
			writeTypeTable(w, "INCOME", led, model.AccountIncome, true)
			fmt.Fprintln(w)
			writeTypeTable(w, "EXPENSES", led, model.AccountExpense, false)
			return w.Flush()
		},
	}

	filterFlags(cmd, &filter)

	return cmd
}

func writeTypeTable(w io.Writer, title string, led *ledger.Ledger, typ model.AccountType, negate bool) {
	fmt.Fprintf(w, "%s\tCURRENCY\tBALANCE\n", title)
	for _, acct := range led.Accounts() {
		if acct.Type != typ {
			continue
		}
		for _, cur := range acct.Currencies() {
			v := acct.Balance(cur)
			if negate {
				v = v.Neg()
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", acct.Name, cur, v.String())
		}
	}
}
