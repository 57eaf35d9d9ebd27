package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/golang-migrate/migrate/v4"

	// postgres driver para las migraciones de la base de datos.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	// file driver para leer las migraciones desde disco.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	// pgx/stdlib registra el driver pgx en database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

const maxInt32 = 1<<31 - 1

type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *config.Config
	Logger *slog.Logger
}

func NewPostgresDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*PostgresDB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("error al interpretar la cadena de conexión a PostgreSQL: %w", err)
	}

	var maxConns int32

	switch {
	case cfg.DatabaseMaxConn <= 0:
		maxConns = 0
	case cfg.DatabaseMaxConn >= maxInt32:
		maxConns = maxInt32
	default:
		maxConns = int32(cfg.DatabaseMaxConn)
	}

	poolConfig.MaxConns = maxConns

	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error al crear el pool de conexiones PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("error al comprobar la conexión con PostgreSQL: %w", err)
	}

	logger.Info("Conexión con PostgreSQL establecida correctamente")

	return &PostgresDB{
		Pool:   pool,
		Config: cfg,
		Logger: logger,
	}, nil
}

func (db *PostgresDB) RunMigrations() error {
	m, err := migrate.New("file://"+db.Config.MigrationsPath, db.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("error al preparar las migraciones: %w", err)
	}

	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error al aplicar las migraciones: %w", err)
	}

	db.Logger.Info("Migraciones aplicadas correctamente",
		"path", db.Config.MigrationsPath,
	)

	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		db.Logger.Info("Conexión con PostgreSQL cerrada")
	}
}
