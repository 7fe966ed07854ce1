package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/hints"
	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daybook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cfg.Server.Username == "" || cfg.Server.Password == "" {
				return fmt.Errorf("config %s: server.username and server.password are required", *configPath)
			}

			var table *hints.Table
			if cfg.HintsFile != "" {
				table = hints.NewTable()
				if err := table.LoadFile(cfg.HintsFile); err != nil {
					return fmt.Errorf("loading hints: %w", err)
				}
			}

			log := logrus.New()
			log.SetFormatter(&logrus.JSONFormatter{})

			led := ledger.New(cfg.Ledger.PrimaryCurrency, cfg.Ledger.DuplicateWindow)
			srv := server.New(led, table, server.Credentials{
				Username: cfg.Server.Username,
				Password: cfg.Server.Password,
			}, log)

			return srv.ListenAndServe(cfg.Server.Addr())
		},
	}
}
