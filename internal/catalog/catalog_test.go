package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsolaris/natursur-bot/internal/catalog"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

func TestNew_ValidCatalog(t *testing.T) {
	products := []models.Product{
		{ID: "f1", Nombre: "Batido F1 Herbalife", Precio: "38,90 €"},
		{ID: "te_termogénico", Nombre: "Té Termogénico"},
	}

	cat, err := catalog.New(products, "test")

	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	product, err := cat.FindByID("f1")
	require.NoError(t, err)
	assert.Equal(t, "Batido F1 Herbalife", product.Nombre)
}

func TestNew_EmptyCatalog(t *testing.T) {
	cat, err := catalog.New(nil, "test")

	require.Error(t, err)
	assert.Nil(t, cat)
	assert.IsType(t, &domainerrors.ErrCatalogoVacio{}, err)
}

func TestNew_MissingFields(t *testing.T) {
	products := []models.Product{
		{ID: "", Nombre: "Sin identificador"},
		{ID: "sin_nombre", Nombre: ""},
	}

	cat, err := catalog.New(products, "test")

	require.Error(t, err)
	assert.Nil(t, cat)
	assert.IsType(t, &domainerrors.ErrCatalogoInvalido{}, err)
}

func TestNew_DuplicateIDs(t *testing.T) {
	products := []models.Product{
		{ID: "f1", Nombre: "Batido F1 Herbalife"},
		{ID: "f1", Nombre: "Batido F1 repetido"},
	}

	cat, err := catalog.New(products, "test")

	require.Error(t, err)
	assert.Nil(t, cat)
}

func TestCatalog_ProductsKeepsOrder(t *testing.T) {
	products := []models.Product{
		{ID: "c", Nombre: "Tercero"},
		{ID: "a", Nombre: "Primero"},
		{ID: "b", Nombre: "Segundo"},
	}

	cat, err := catalog.New(products, "test")
	require.NoError(t, err)

	got := cat.Products()
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestCatalog_FindByIDUnknown(t *testing.T) {
	cat, err := catalog.New([]models.Product{{ID: "f1", Nombre: "Batido F1 Herbalife"}}, "test")
	require.NoError(t, err)

	_, err = cat.FindByID("inexistente")

	require.Error(t, err)
	assert.IsType(t, &domainerrors.ErrProductoNoEncontrado{}, err)
}
