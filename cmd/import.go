package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"episodemap/galaxy/internal/db"
	"episodemap/galaxy/internal/ingest"
	"episodemap/galaxy/internal/logger"
	"episodemap/galaxy/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Load episode records (one JSON object per line), replacing stored episodes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Get()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := ingest.Decode(f)
		if err != nil {
			return err
		}
		for _, skip := range res.Skipped {
			log.Warn("Skipped record", zap.Int("line", skip.Line), zap.Error(skip.Err))
		}
		if len(res.Items) == 0 {
			return fmt.Errorf("no episodes found in %s", args[0])
		}

		path := importTarget()
		d, err := db.OpenDB(path)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.ReplaceEpisodes(res.Items); err != nil {
			return err
		}
		log.Info("Import complete", zap.String("db", path), zap.Int("episodes", len(res.Items)))

		fmt.Printf("%s Imported %s episodes into %s\n",
			ui.StatusIcon(true), humanize.Comma(int64(len(res.Items))), path)
		if n := len(res.Skipped); n > 0 {
			fmt.Printf("%s Skipped %d %s (see log for details)\n",
				ui.WarnIcon(), n, plural(n, "line", "lines"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
