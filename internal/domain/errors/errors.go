package errors

import (
	"fmt"
)

type ErrCantidadInvalida struct {
	Texto string
}

func (e *ErrCantidadInvalida) Error() string {
	return "cantidad no válida: " + e.Texto
}

func (e *ErrCantidadInvalida) Is(target error) bool {
	_, ok := target.(*ErrCantidadInvalida)
	return ok
}

type ErrCarritoVacio struct {
	ChatID int64
}

func (e *ErrCarritoVacio) Error() string {
	return fmt.Sprintf("el carrito del chat %d está vacío", e.ChatID)
}

func (e *ErrCarritoVacio) Is(target error) bool {
	_, ok := target.(*ErrCarritoVacio)
	return ok
}

type ErrEnvioPedido struct {
	Cause error
}

func (e *ErrEnvioPedido) Error() string {
	return fmt.Sprintf("error al enviar el pedido: %v", e.Cause)
}

func (e *ErrEnvioPedido) Unwrap() error {
	return e.Cause
}

func (e *ErrEnvioPedido) Is(target error) bool {
	_, ok := target.(*ErrEnvioPedido)
	return ok
}

type ErrProductoNoEncontrado struct {
	ProductID string
}

func (e *ErrProductoNoEncontrado) Error() string {
	return "producto no encontrado: " + e.ProductID
}

func (e *ErrProductoNoEncontrado) Is(target error) bool {
	_, ok := target.(*ErrProductoNoEncontrado)
	return ok
}

type ErrComandoDesconocido struct {
	Command string
}

func (e *ErrComandoDesconocido) Error() string {
	return "comando desconocido: " + e.Command
}

type ErrCallbackDesconocido struct {
	Data string
}

func (e *ErrCallbackDesconocido) Error() string {
	return "callback desconocido: " + e.Data
}

type ErrMissingRequiredField struct {
	FieldName string
}

func (e *ErrMissingRequiredField) Error() string {
	return "falta el campo obligatorio: " + e.FieldName
}

type ErrCatalogoInvalido struct {
	Source string
	Cause  error
}

func (e *ErrCatalogoInvalido) Error() string {
	return fmt.Sprintf("catálogo no válido (%s): %v", e.Source, e.Cause)
}

func (e *ErrCatalogoInvalido) Unwrap() error {
	return e.Cause
}

type ErrCatalogoVacio struct {
	Source string
}

func (e *ErrCatalogoVacio) Error() string {
	return "el catálogo no contiene productos: " + e.Source
}

type ErrUnknownCatalogSource struct {
	Source string
}

func (e *ErrUnknownCatalogSource) Error() string {
	return "origen de catálogo desconocido: " + e.Source
}

type ErrUnknownSessionStore struct {
	Store string
}

func (e *ErrUnknownSessionStore) Error() string {
	return "tipo de almacén de sesiones desconocido: " + e.Store
}

const (
	OpGetSession    = "obtener sesión"
	OpPutSession    = "guardar sesión"
	OpRemoveSession = "eliminar sesión"
	OpListProducts  = "listar productos"
	OpUpsertProduct = "insertar producto"
)

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("error al construir la consulta SQL para %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("error al ejecutar la consulta SQL para %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("error al escanear %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

type ErrUnknownNotifier struct {
	Transport string
}

func (e *ErrUnknownNotifier) Error() string {
	return "transporte de pedidos desconocido: " + e.Transport
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
