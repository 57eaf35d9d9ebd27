package sql

import (
	"context"

	"github.com/devsolaris/natursur-bot/internal/database"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

type CatalogRepository struct {
	db *database.PostgresDB
}

func NewCatalogRepository(db *database.PostgresDB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Pool.Query(ctx,
		"SELECT id, nombre, descripcion, imagen, precio FROM productos ORDER BY posicion")
	if err != nil {
		return nil, &domainerrors.ErrSQLExecution{Operation: domainerrors.OpListProducts, Cause: err}
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Imagen, &p.Precio); err != nil {
			return nil, &domainerrors.ErrSQLScan{Entity: "producto", Cause: err}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &domainerrors.ErrSQLExecution{Operation: domainerrors.OpListProducts, Cause: err}
	}

	return products, nil
}

func (r *CatalogRepository) Upsert(ctx context.Context, product models.Product) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO productos (id, nombre, descripcion, imagen, precio)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET nombre = EXCLUDED.nombre,
			descripcion = EXCLUDED.descripcion,
			imagen = EXCLUDED.imagen,
			precio = EXCLUDED.precio`,
		product.ID, product.Nombre, product.Descripcion, product.Imagen, product.Precio)
	if err != nil {
		return &domainerrors.ErrSQLExecution{Operation: domainerrors.OpUpsertProduct, Cause: err}
	}

	return nil
}
