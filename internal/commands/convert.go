package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/convert"
)

func newConvertCommand() *cobra.Command {
	var format string

	registry := convert.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "convert <export.csv>",
		Short: "Convert an institution export to canonical CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := registry.Get(format)
			if conv == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := conv.Convert(f)
			if err != nil {
				return fmt.Errorf("converting %s: %w", args[0], err)
			}

			return convert.WriteRows(os.Stdout, rows)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format (required)")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}
