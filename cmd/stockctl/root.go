package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// userStoreOpener abre el repositorio de usuarios y devuelve la función que lo cierra.
type userStoreOpener func(ctx context.Context) (repository.UserRepository, func(), error)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Operación de stockroom-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newUserCommand(openPostgresUsers))
	return cmd
}

// openPool carga la configuración (mismas variables que la API) y conecta a PostgreSQL.
func openPool(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}

func openPostgresUsers(ctx context.Context) (repository.UserRepository, func(), error) {
	pool, cfg, err := openPool(ctx)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewUserRepository(pool, cfg.DB.QueryTimeout), pool.Close, nil
}
