package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-disaster-reports/internal/reports"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print report statistics as JSON",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := reports.NewService(db, db).Stats(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
