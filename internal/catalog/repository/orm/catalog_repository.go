package orm

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/devsolaris/natursur-bot/internal/database"
	customerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
	"github.com/devsolaris/natursur-bot/pkg/txs"
)

type CatalogRepository struct {
	db *database.PostgresDB
	sq sq.StatementBuilderType
}

func NewCatalogRepository(db *database.PostgresDB) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *CatalogRepository) List(ctx context.Context) ([]models.Product, error) {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	selectQuery := r.sq.Select("id", "nombre", "descripcion", "imagen", "precio").
		From("productos").
		OrderBy("posicion")

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpListProducts, Cause: err}
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListProducts, Cause: err}
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Imagen, &p.Precio); err != nil {
			return nil, &customerrors.ErrSQLScan{Entity: "producto", Cause: err}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, &customerrors.ErrSQLExecution{Operation: customerrors.OpListProducts, Cause: err}
	}

	return products, nil
}

func (r *CatalogRepository) Upsert(ctx context.Context, product models.Product) error {
	querier := txs.GetQuerier(ctx, r.db.Pool)

	upsertQuery := r.sq.Insert("productos").
		Columns("id", "nombre", "descripcion", "imagen", "precio").
		Values(product.ID, product.Nombre, product.Descripcion, product.Imagen, product.Precio).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET nombre = EXCLUDED.nombre,
				descripcion = EXCLUDED.descripcion,
				imagen = EXCLUDED.imagen,
				precio = EXCLUDED.precio`)

	query, args, err := upsertQuery.ToSql()
	if err != nil {
		return &customerrors.ErrBuildSQLQuery{Operation: customerrors.OpUpsertProduct, Cause: err}
	}

	if _, err := querier.Exec(ctx, query, args...); err != nil {
		return &customerrors.ErrSQLExecution{Operation: customerrors.OpUpsertProduct, Cause: err}
	}

	return nil
}
