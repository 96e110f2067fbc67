package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/courtdata/pbparse/internal/report"
)

// showCmd displays a previously generated enhanced play-by-play table.
func showCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "show [enhanced_play_by_play.csv]",
		Short: "Display the enhanced play-by-play table from a previous parse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			conf, closer, errConf := loadConfig()
			if errConf != nil {
				return errConf
			}
			defer closer()

			path := filepath.Join(conf.Output.Dir, report.EnhancedFile)
			if len(args) == 1 {
				path = args[0]
			}

			rows, errRead := report.ReadEnhanced(path)
			if errRead != nil {
				slog.Error("Failed to read enhanced table", slog.String("path", path), slog.String("error", errRead.Error()))

				return errRead
			}

			if compact {
				report.RenderCompact(os.Stdout, rows)
			} else {
				report.RenderEnhanced(os.Stdout, rows)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "one line per play instead of full blocks")

	return cmd
}
