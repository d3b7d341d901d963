// Package app is the composition root of the partition hub. The module owns
// no binaries, so instead of a main.go a host process calls New with loaded
// configuration and receives connected infrastructure, a populated scheme
// registry, and ready application handlers.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/learnhub/partition-hub/config"
	"github.com/learnhub/partition-hub/internal/application/command"
	"github.com/learnhub/partition-hub/internal/application/query"
	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/internal/infrastructure/persistence/postgres"
	"github.com/learnhub/partition-hub/internal/infrastructure/persistence/redis"
	"github.com/learnhub/partition-hub/internal/scheme"
	"github.com/learnhub/partition-hub/pkg/logger"
)

// Handlers groups the application handlers a host interacts with.
type Handlers struct {
	SavePartition   *command.SavePartitionHandler
	DeletePartition *command.DeletePartitionHandler
	AssignGroup     *command.AssignGroupHandler
	GetPartition    *query.GetPartitionHandler
	ListPartitions  *query.ListPartitionsHandler
}

// App is the wired module: infrastructure connections and the handlers built
// on top of them.
type App struct {
	Handlers

	Log *logger.Logger

	conn  *postgres.Connection
	store *redis.AssignmentStore
}

// New connects to Postgres and Redis, applies migrations, registers the
// built-in schemes in the process-wide registry, and wires the handlers.
// Because scheme registration has no invalidation, call New at most once per
// process. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.App.LogLevel),
		AddCaller: true,
	}).With(logger.Component(cfg.App.Name))

	conn, err := postgres.NewConnection(ctx, postgresConfig(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("app: connect postgres: %w", err)
	}
	if err := conn.Migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("app: migrate: %w", err)
	}

	store, err := redis.NewAssignmentStore(redisConfig(cfg.Redis))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("app: connect redis: %w", err)
	}

	if err := scheme.RegisterDefaults(partition.DefaultRegistry(), store); err != nil {
		store.Close()
		conn.Close()
		return nil, fmt.Errorf("app: register schemes: %w", err)
	}

	// The configured default must resolve, or every schemeless partition
	// construction would fail later.
	if _, err := partition.GetScheme(cfg.Scheme.DefaultID); err != nil {
		store.Close()
		conn.Close()
		return nil, fmt.Errorf("app: default scheme: %w", err)
	}

	log.Info("partition hub ready",
		logger.String("environment", string(cfg.App.Environment)),
		logger.SchemeName(cfg.Scheme.DefaultID),
	)

	return &App{
		Handlers: newHandlers(postgres.NewPartitionRepository(conn), log),
		Log:      log,
		conn:     conn,
		store:    store,
	}, nil
}

// Ping verifies both backing stores are reachable.
func (a *App) Ping(ctx context.Context) error {
	if err := a.conn.Ping(ctx); err != nil {
		return err
	}
	return a.store.Ping(ctx)
}

// Close releases the infrastructure connections.
func (a *App) Close() {
	a.store.Close()
	a.conn.Close()
}

func newHandlers(repo partition.Repository, log *logger.Logger) Handlers {
	return Handlers{
		SavePartition:   command.NewSavePartitionHandler(repo, log),
		DeletePartition: command.NewDeletePartitionHandler(repo, log),
		AssignGroup:     command.NewAssignGroupHandler(repo, log),
		GetPartition:    query.NewGetPartitionHandler(repo),
		ListPartitions:  query.NewListPartitionsHandler(repo),
	}
}

// postgresConfig maps the loaded database section onto the connection config,
// keeping connection defaults for fields the environment does not cover.
func postgresConfig(cfg config.DatabaseConfig) postgres.Config {
	out := postgres.DefaultConfig()
	out.URL = cfg.URL
	if cfg.MaxConns > 0 {
		out.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		out.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		out.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		out.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}
	return out
}

// redisConfig maps the loaded redis section onto the store config.
func redisConfig(cfg config.RedisConfig) redis.Config {
	out := redis.DefaultConfig()
	if cfg.Host != "" {
		out.Host = cfg.Host
	}
	if cfg.Port > 0 {
		out.Port = cfg.Port
	}
	out.Password = cfg.Password
	out.DB = cfg.DB
	if cfg.PoolSize > 0 {
		out.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		out.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		out.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		out.WriteTimeout = cfg.WriteTimeout
	}
	return out
}
