// Command reportctl performs operator tasks against the reports database.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mr1hm/go-disaster-reports/internal/config"
	"github.com/mr1hm/go-disaster-reports/internal/logging"
	"github.com/mr1hm/go-disaster-reports/internal/repository"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:           "reportctl",
	Short:         "Operator tools for the disaster reports service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: DB_PATH env)")

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (default: bundled data)")
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Seed even if reports already exist")

	tokenCmd.Flags().StringVarP(&tokenName, "name", "n", "", "Admin name recorded as verifiedBy")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: ADMIN_TOKEN_TTL env)")
	_ = tokenCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		logging.Fatalf("reportctl: %v", err)
	}
}

// loadConfig reads the environment and installs a stderr logger so command
// output on stdout stays machine readable.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	slog.SetDefault(logging.New(os.Stderr, cfg.Logging.Level))
	return cfg, nil
}

func openDB(cfg *config.Config) (*repository.SQLiteDB, error) {
	return repository.NewSQLiteDB(cfg.DB.Path)
}
