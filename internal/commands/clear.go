package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the server's ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := newClient(cfg).Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Ledger cleared")
			return nil
		},
	}
}
