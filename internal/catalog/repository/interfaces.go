package repository

import (
	"context"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// Source entrega la lista ordenada de productos desde la que se construye el
// catálogo en memoria.
type Source interface {
	List(ctx context.Context) ([]models.Product, error)
}

type Writer interface {
	Upsert(ctx context.Context, product models.Product) error
}
