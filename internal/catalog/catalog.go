package catalog

import (
	"fmt"

	"go.uber.org/multierr"

	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// Catalog es la lista ordenada de productos cargada al arrancar. No se
// modifica durante la vida del proceso.
type Catalog struct {
	products []models.Product
	byID     map[string]int
}

func New(products []models.Product, source string) (*Catalog, error) {
	if len(products) == 0 {
		return nil, &domainerrors.ErrCatalogoVacio{Source: source}
	}

	byID := make(map[string]int, len(products))

	var invalid error

	for i, p := range products {
		if err := p.Validate(); err != nil {
			invalid = multierr.Append(invalid, fmt.Errorf("producto %d: %w", i, err))
			continue
		}

		if _, exists := byID[p.ID]; exists {
			invalid = multierr.Append(invalid, fmt.Errorf("producto %d: id duplicado %q", i, p.ID))
			continue
		}

		byID[p.ID] = i
	}

	if invalid != nil {
		return nil, &domainerrors.ErrCatalogoInvalido{Source: source, Cause: invalid}
	}

	return &Catalog{
		products: products,
		byID:     byID,
	}, nil
}

func (c *Catalog) Products() []models.Product {
	return c.products
}

func (c *Catalog) FindByID(id string) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, &domainerrors.ErrProductoNoEncontrado{ProductID: id}
	}

	return c.products[i], nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}
