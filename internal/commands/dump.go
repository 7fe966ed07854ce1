package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/client"
)

func newDumpCommand(configPath *string) *cobra.Command {
	var filter client.DumpFilter

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the ledger as canonical CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			out, err := newClient(cfg).Dump(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	filterFlags(cmd, &filter)

	return cmd
}
