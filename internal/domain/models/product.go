package models

import (
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
)

// Product es un registro del catálogo tal y como lo produce el scraper:
// cinco campos de texto, id único.
type Product struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Imagen      string `json:"imagen"`
	Precio      string `json:"precio"`
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return &domainerrors.ErrMissingRequiredField{FieldName: "id"}
	}

	if p.Nombre == "" {
		return &domainerrors.ErrMissingRequiredField{FieldName: "nombre"}
	}

	return nil
}
