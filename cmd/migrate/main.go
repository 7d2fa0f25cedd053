package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/acmeweb/acme-api/internal/logger"
	"github.com/acmeweb/acme-api/internal/schema"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	configPath string
	withSeed   bool
)

// rootCmd drops and recreates every table. This is destructive by
// definition and meant for development and test databases only.
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Reset the database schema",
	Long: `Drop and recreate every table of the resource store.

All existing data is lost. Optionally seeds the fresh schema with
sample records for local development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config.env", "Path to configuration file")
	rootCmd.Flags().BoolVar(&withSeed, "seed", false, "Seed sample data after recreating the schema")
}

func runMigrate(cmd *cobra.Command) error {
	_ = godotenv.Load(configPath)

	if err := logger.Initialize(getEnv("APP_LOG_LEVEL", "info")); err != nil {
		return err
	}
	defer logger.Log.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("POSTGRES_USER", "user"),
			getEnv("POSTGRES_PASSWORD", "password"),
			getEnv("POSTGRES_HOST", "localhost"),
			getEnv("POSTGRES_PORT", "5432"),
			getEnv("POSTGRES_DB", "database"),
		)
	}

	ctx := cmd.Context()

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer db.Close()

	if err := schema.Init(ctx, db); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	logger.Log.Infow("schema recreated", "tables", len(schema.Tables()))

	if withSeed {
		if err := schema.Seed(ctx, db); err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
