package file

import (
	"context"
	"encoding/json"
	"os"

	"github.com/go-faster/errors"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// CatalogRepository lee el catálogo desde un fichero JSON con la forma de
// productos_scrapeados.json: un array de objetos con los cinco campos.
type CatalogRepository struct {
	path string
}

func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{path: path}
}

func (r *CatalogRepository) List(_ context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, errors.Wrap(err, "error al leer el fichero de catálogo")
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, errors.Wrap(err, "error al deserializar el catálogo")
	}

	return products, nil
}
