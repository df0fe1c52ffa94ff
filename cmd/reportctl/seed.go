package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mr1hm/go-disaster-reports/internal/repository"
	"github.com/mr1hm/go-disaster-reports/internal/seed"
)

var (
	seedFile  string
	seedForce bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demonstration reports and their dependent records",
	Long: `Load reports, evacuation centers, infrastructure statuses and community
sentiments into the database.

Without --file the bundled data set is used. Seeding is refused when the
database already holds reports unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := readSeed(seedFile)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if !seedForce {
		existing, err := db.ListReports(ctx, repository.Filter{})
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("database %s already has %d reports, use --force to seed anyway", cfg.DB.Path, len(existing))
		}
	}

	sum, err := seed.Load(ctx, db, db, data)
	if err != nil {
		return err
	}
	slog.Info("seed complete", "db", cfg.DB.Path, "reports", sum.Reports)

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d reports, %d evacuation centers, %d infrastructure statuses, %d sentiments\n",
		sum.Reports, sum.EvacuationCenters, sum.Infrastructure, sum.Sentiments)
	return nil
}

func readSeed(path string) (*seed.Data, error) {
	if path == "" {
		return seed.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}
	return seed.Parse(raw)
}
