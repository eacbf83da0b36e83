package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	portssvc "github.com/shopledger/shop_ledger_app/internal/core/ports/services"
	"github.com/shopledger/shop_ledger_app/internal/core/services"
	"github.com/shopledger/shop_ledger_app/internal/platform/config"
	"github.com/shopledger/shop_ledger_app/internal/platform/logging"
	"github.com/shopledger/shop_ledger_app/internal/repositories/database/pgsql"
	"github.com/shopledger/shop_ledger_app/pkg/database"
	"github.com/spf13/cobra"
)

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pool     *pgxpool.Pool
	services *portssvc.ServiceContainer
	userID   string
}

// withApp loads config, connects the pool, wires the containers, runs fn
// and tears everything down.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := logging.WithLogger(cmd.Context(), logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer database.ClosePgxPool(pool)

	repos := pgsql.NewRepositoryProvider(pool)
	container := services.NewServiceContainer(repos)

	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = cfg.DefaultUser
	}

	return fn(ctx, &app{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		services: container,
		userID:   userID,
	})
}

// printJSON writes a report to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
