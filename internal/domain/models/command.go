package models

type CommandType string

const (
	CommandStart     CommandType = "/start"
	CommandHelp      CommandType = "/help"
	CommandEncuesta  CommandType = "/encuesta"
	CommandProductos CommandType = "/productos"
	CommandUnknown   CommandType = "unknown"
)

type Command struct {
	Type     CommandType
	ChatID   int64
	UserID   int64
	Text     string
	Username string
	FullName string
}

// Callback es la pulsación de un botón inline: solicitar_<id> o una de las
// acciones del menú del carrito.
type Callback struct {
	ChatID   int64
	UserID   int64
	Username string
	FullName string
	Data     string
}

const (
	CallbackSelectPrefix = "solicitar_"
	CallbackAddMore      = "pedido_agregar"
	CallbackConfirm      = "pedido_confirmar"
	CallbackCancel       = "pedido_cancelar"
)
