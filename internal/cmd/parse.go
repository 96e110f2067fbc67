package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtdata/pbparse/internal/report"
	"github.com/courtdata/pbparse/pkg/pbp"
)

// parseCmd represents the parse command: the full pipeline from one XML
// document to the emitted tables.
func parseCmd() *cobra.Command {
	var (
		outDir  string
		noPrint bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file.xml>",
		Short: "Parse a play-by-play XML file and emit box score, stats and lineup tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			conf, closer, errConf := loadConfig()
			if errConf != nil {
				return errConf
			}
			defer closer()

			path := args[0]

			game, errParse := pbp.ParseFile(path)
			if errParse != nil {
				slog.Error("Failed to parse document", slog.String("path", path), slog.String("error", errParse.Error()))

				return errParse
			}

			slog.Info("Parsed game",
				slog.String("format", game.Format),
				slog.String("home", game.Info.HomeName),
				slog.String("away", game.Info.AwayName),
				slog.Int("events", len(game.Events)))

			lineups := pbp.Reconstruct(game, conf.Game.InferWindow)
			box := pbp.Summarize(game, conf.Game.RegulationMinutes)

			slog.Info("Reconstructed lineups",
				slog.String("provenance", lineups.Provenance),
				slog.Int("snapshots", len(lineups.Snapshots)))

			if outDir == "" {
				outDir = conf.Output.Dir
			}

			if conf.Output.CSV {
				if errCSV := report.WriteCSV(outDir, game, box, lineups); errCSV != nil {
					return errCSV
				}

				slog.Info("Wrote CSV tables", slog.String("dir", outDir))
			}

			if conf.Output.SQLite {
				store, errStore := report.OpenStore(ctx, conf.Output.SQLitePath)
				if errStore != nil {
					return errStore
				}
				defer store.Close()

				if errSave := store.SaveGame(ctx, game, box, lineups); errSave != nil {
					return errSave
				}

				slog.Info("Saved game to sqlite", slog.String("path", conf.Output.SQLitePath))
			}

			if !noPrint {
				report.PrintGame(os.Stdout, game, box, lineups)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (overrides config)")
	cmd.Flags().BoolVar(&noPrint, "quiet", false, "skip the console box score")

	return cmd
}
