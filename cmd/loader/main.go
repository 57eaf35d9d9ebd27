// El cargador lee el catálogo de productos desde un fichero JSON, lo valida y
// lo vuelca en PostgreSQL, de modo que el bot pueda arrancar después con
// CATALOG_SOURCE=SQL o SQUIRREL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/devsolaris/natursur-bot/internal/catalog"
	"github.com/devsolaris/natursur-bot/internal/catalog/repository/file"
	"github.com/devsolaris/natursur-bot/internal/catalog/repository/orm"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/database"
	"github.com/devsolaris/natursur-bot/pkg"
	"github.com/devsolaris/natursur-bot/pkg/txs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error al cargar el catálogo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	appLogger := pkg.NewLogger(os.Stdout)

	cfg := config.LoadConfig()

	ctx := context.Background()

	products, err := file.NewCatalogRepository(cfg.CatalogFile).List(ctx)
	if err != nil {
		return err
	}

	cat, err := catalog.New(products, cfg.CatalogFile)
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("error de conexión a la base de datos: %w", err)
	}

	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	txManager := txs.NewTxManager(db.Pool, appLogger)
	repo := orm.NewCatalogRepository(db)

	err = txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for _, product := range cat.Products() {
			if err := repo.Upsert(ctx, product); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	appLogger.Info("Catálogo cargado en PostgreSQL",
		"file", cfg.CatalogFile,
		"products", cat.Len(),
	)

	return nil
}
