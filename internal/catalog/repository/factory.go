package repository

import (
	"log/slog"

	"github.com/devsolaris/natursur-bot/internal/catalog/repository/file"
	"github.com/devsolaris/natursur-bot/internal/catalog/repository/orm"
	sqlrepo "github.com/devsolaris/natursur-bot/internal/catalog/repository/sql"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/database"
	"github.com/devsolaris/natursur-bot/internal/domain/errors"
)

type Factory struct {
	db     *database.PostgresDB
	config *config.Config
	logger *slog.Logger
}

func NewFactory(db *database.PostgresDB, config *config.Config, logger *slog.Logger) *Factory {
	return &Factory{
		db:     db,
		config: config,
		logger: logger,
	}
}

func (f *Factory) CreateSource() (Source, error) {
	switch f.config.CatalogSource {
	case config.FileCatalog:
		f.logger.Info("Catálogo desde fichero JSON",
			"file", f.config.CatalogFile,
		)

		return file.NewCatalogRepository(f.config.CatalogFile), nil
	case config.SQLCatalog:
		f.logger.Info("Catálogo desde PostgreSQL (SQL)")
		return sqlrepo.NewCatalogRepository(f.db), nil
	case config.SquirrelCatalog:
		f.logger.Info("Catálogo desde PostgreSQL (Squirrel)")
		return orm.NewCatalogRepository(f.db), nil
	default:
		return nil, &errors.ErrUnknownCatalogSource{Source: string(f.config.CatalogSource)}
	}
}
