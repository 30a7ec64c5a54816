package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/northwind/catalog-console/app/catalog"
	"github.com/northwind/catalog-console/app/categories"
	"github.com/northwind/catalog-console/app/config"
	"github.com/northwind/catalog-console/app/console"
	"github.com/northwind/catalog-console/app/database"
	"github.com/northwind/catalog-console/app/integrity"
	"github.com/northwind/catalog-console/app/logging"
	"github.com/northwind/catalog-console/app/menu"
	"github.com/northwind/catalog-console/app/validation"
	"github.com/northwind/catalog-console/models"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "northwind",
	Short: "Manage the Northwind product catalog from the console",
	Long: `northwind is an interactive console for the products and categories of a
Northwind PostgreSQL database.

Configuration is read from the environment (a .env file is loaded first),
then from northwind.yaml in the working directory:
  DATABASE_URL      connection string (required)
  DATABASE_DRIVER   pgx (default) or postgres
  LOG_LEVEL         debug, info, warn, error
  LOG_FILE          log destination (default northwind.log)`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func run(ctx context.Context, in io.Reader, out io.Writer) error {
	// Load .env file if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Program started")
	defer logger.Info("Program ended")

	db, closeDB, err := database.New(cfg.Database, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		return err
	}
	defer closeDB()

	repos := models.NewRepositories(db)
	engine := validation.New()
	policy := integrity.NewPolicy(integrity.FromRepositories(repos))
	c := console.New(in, out)

	controller := menu.NewController(c, logger,
		catalog.NewCatalogHandler(repos.Products, repos.Categories, repos.Suppliers, engine, policy),
		categories.NewCategoryHandler(repos.Categories, engine, policy),
	)
	controller.Run(logging.NewContext(ctx, logger))
	return nil
}
