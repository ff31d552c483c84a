package config

import (
	"path"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"
)

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)
	rootPath := env.MustGetString(RootPathEnv)

	migrationsPath := path.Join(rootPath, "db", "migrations")

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,
	}, nil
}
