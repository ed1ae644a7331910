package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marmalade-labs/banter/db"
	"github.com/marmalade-labs/banter/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations and exit",
	Long: `Apply all pending database migrations against the configured
PostgreSQL database. The serve command runs migrations automatically on
startup; migrate exists for deploy pipelines that migrate separately.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := db.Migrate(cfg.PostgresURL()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		fmt.Println("migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
