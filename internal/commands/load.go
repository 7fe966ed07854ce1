package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newLoadCommand(configPath *string) *cobra.Command {
	var thisName string
	var skipInvalid bool

	cmd := &cobra.Command{
		Use:   "load <file.csv> [file.csv...]",
		Short: "Send canonical CSV files to the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			cl := newClient(cfg)

			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}

				name := thisName
				if name == "" {
					base := filepath.Base(path)
					name = strings.TrimSuffix(base, filepath.Ext(base))
				}

				result, err := cl.Load(cmd.Context(), name, string(data), skipInvalid)
				if err != nil {
					return fmt.Errorf("loading %s: %w", path, err)
				}

				fmt.Printf("%s: %d transactions, %d duplicates merged\n", path, result.Count-len(result.Duplicates), len(result.Duplicates))
				for _, d := range result.Duplicates {
					fmt.Printf("  dupe %s %s -> %s %s (first seen as %q, matched as %q)\n",
						d.Date, d.Src, d.Dest, d.Amount, d.OriginalPerspective, d.ActualPerspective)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&thisName, "this", "", "account the batch belongs to (default: file basename)")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "drop unparseable rows instead of rejecting the batch")

	return cmd
}
