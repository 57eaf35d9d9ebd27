package models

type ChatState int

const (
	StateIdle ChatState = iota
	StateInSurvey
	StateAwaitingQuantity
	StateReviewingCart
)

type SurveyProgress struct {
	Index   int      `json:"index"`
	Answers []string `json:"answers"`
}

type LineItem struct {
	Product  Product `json:"product"`
	Cantidad int     `json:"cantidad"`
}

type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

func (c *Cart) TotalUnits() int {
	if c == nil {
		return 0
	}

	total := 0
	for _, item := range c.Items {
		total += item.Cantidad
	}

	return total
}

// Session es el estado de conversación de un chat: una unión etiquetada por
// State. La encuesta y el carrito pueden coexistir; el campo State decide a
// qué flujo pertenece el siguiente texto libre.
type Session struct {
	State   ChatState       `json:"state"`
	Survey  *SurveyProgress `json:"survey,omitempty"`
	Pending *Product        `json:"pending,omitempty"`
	Cart    *Cart           `json:"cart,omitempty"`
}

func NewSession() *Session {
	return &Session{State: StateIdle}
}

// Empty indica que la sesión ya no guarda nada y puede eliminarse del store.
func (s *Session) Empty() bool {
	return s.State == StateIdle && s.Survey == nil && s.Pending == nil && s.Cart.IsEmpty()
}
