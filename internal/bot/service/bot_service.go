package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/devsolaris/natursur-bot/internal/bot/domain"
	"github.com/devsolaris/natursur-bot/internal/bot/notify"
	"github.com/devsolaris/natursur-bot/internal/catalog"
	"github.com/devsolaris/natursur-bot/internal/common/metrics"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// SessionRepository es el almacén de conversación por chat. Get devuelve nil
// cuando no hay sesión; Remove es idempotente.
type SessionRepository interface {
	Get(ctx context.Context, chatID int64) (*models.Session, error)

	Put(ctx context.Context, chatID int64, session *models.Session) error

	Remove(ctx context.Context, chatID int64) error
}

// OrderLog es el registro local de auditoría de pedidos confirmados.
type OrderLog interface {
	Append(order *models.Order) error
}

type BotService struct {
	sessionRepo    SessionRepository
	catalog        *catalog.Catalog
	telegramClient domain.TelegramClientAPI
	orderNotifier  notify.OrderNotifier
	orderLog       OrderLog
	questions      []string
	adminChatID    int64
	logger         *slog.Logger
	now            func() time.Time
}

func NewBotService(
	sessionRepo SessionRepository,
	cat *catalog.Catalog,
	telegramClient domain.TelegramClientAPI,
	orderNotifier notify.OrderNotifier,
	orderLog OrderLog,
	questions []string,
	adminChatID int64,
	logger *slog.Logger,
) *BotService {
	return &BotService{
		sessionRepo:    sessionRepo,
		catalog:        cat,
		telegramClient: telegramClient,
		orderNotifier:  orderNotifier,
		orderLog:       orderLog,
		questions:      questions,
		adminChatID:    adminChatID,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock sustituye el reloj del servicio (se usa en tests).
func (s *BotService) WithClock(now func() time.Time) *BotService {
	s.now = now
	return s
}

func (s *BotService) ProcessCommand(ctx context.Context, command *models.Command) (string, error) {
	//nolint:exhaustive // CommandUnknown se trata en el bloque default
	switch command.Type {
	case models.CommandStart:
		return s.handleStartCommand(ctx, command)
	case models.CommandHelp:
		return s.handleHelpCommand(ctx, command)
	case models.CommandEncuesta:
		return s.handleEncuestaCommand(ctx, command)
	case models.CommandProductos:
		return s.handleProductosCommand(ctx, command)
	default:
		return "Comando desconocido. Escribe /help para ver los comandos disponibles.",
			&domainerrors.ErrComandoDesconocido{Command: string(command.Type)}
	}
}

// ProcessMessage enruta el texto libre según la etiqueta de estado de la
// sesión del chat.
func (s *BotService) ProcessMessage(ctx context.Context, chatID, userID int64, text, username, fullName string) (string, error) {
	session, err := s.sessionRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}

	if session == nil {
		return "Usa /productos para ver el catálogo o /encuesta para responder la encuesta.", nil
	}

	switch session.State {
	case models.StateInSurvey:
		return s.handleSurveyAnswer(ctx, chatID, session, text)
	case models.StateAwaitingQuantity:
		return s.handleQuantityInput(ctx, chatID, session, text)
	case models.StateIdle, models.StateReviewingCart:
		return "Usa /productos para ver el catálogo o /encuesta para responder la encuesta.", nil
	default:
		return "", fmt.Errorf("estado de conversación desconocido: %d", session.State)
	}
}

// ProcessCallback gestiona las pulsaciones de botones inline: selección de
// producto y menú del carrito.
func (s *BotService) ProcessCallback(ctx context.Context, callback *models.Callback) (string, error) {
	switch {
	case strings.HasPrefix(callback.Data, models.CallbackSelectPrefix):
		productID := strings.TrimPrefix(callback.Data, models.CallbackSelectPrefix)
		return s.handleProductSelection(ctx, callback.ChatID, productID)
	case callback.Data == models.CallbackAddMore:
		return s.handleAddMore(ctx, callback.ChatID)
	case callback.Data == models.CallbackConfirm:
		return s.handleConfirmOrder(ctx, callback)
	case callback.Data == models.CallbackCancel:
		return s.handleCancelOrder(ctx, callback.ChatID)
	default:
		return "", &domainerrors.ErrCallbackDesconocido{Data: callback.Data}
	}
}

func (s *BotService) handleStartCommand(_ context.Context, _ *models.Command) (string, error) {
	return "👋 ¡Hola! Puedes usar los siguientes comandos:\n" +
		"📋 /encuesta - Responder una breve encuesta\n" +
		"🛍️ /productos - Ver nuestro catálogo Herbalife", nil
}

func (s *BotService) handleHelpCommand(_ context.Context, _ *models.Command) (string, error) {
	return `Comandos disponibles:
/start - empezar a usar el bot
/help - lista de comandos
/encuesta - responder una breve encuesta
/productos - ver el catálogo y hacer un pedido`, nil
}

// handleEncuestaCommand (re)inicia la encuesta: siempre resetea el progreso
// anterior, conservando carrito y selección pendiente.
func (s *BotService) handleEncuestaCommand(ctx context.Context, command *models.Command) (string, error) {
	if len(s.questions) == 0 {
		return "La encuesta no está disponible en este momento.", nil
	}

	session, err := s.sessionRepo.Get(ctx, command.ChatID)
	if err != nil {
		return "", err
	}

	if session == nil {
		session = models.NewSession()
	}

	session.Survey = &models.SurveyProgress{Index: 0, Answers: []string{}}
	session.State = models.StateInSurvey

	if err := s.sessionRepo.Put(ctx, command.ChatID, session); err != nil {
		return "", err
	}

	return s.questions[0], nil
}

func (s *BotService) handleProductosCommand(ctx context.Context, command *models.Command) (string, error) {
	for _, product := range s.catalog.Products() {
		caption := fmt.Sprintf("*%s*\n%s", product.Nombre, product.Descripcion)
		if product.Precio != "" {
			caption += fmt.Sprintf("\n💶 %s", product.Precio)
		}

		buttons := [][]domain.Button{
			{{Text: "🛒 Solicitar", Data: models.CallbackSelectPrefix + product.ID}},
		}

		if err := s.telegramClient.SendPhoto(ctx, command.ChatID, product.Imagen, caption, buttons); err != nil {
			s.logger.Error("Error al enviar el producto",
				"error", err,
				"chatID", command.ChatID,
				"productID", product.ID,
			)
		}
	}

	return "", nil
}

func (s *BotService) handleSurveyAnswer(ctx context.Context, chatID int64, session *models.Session, text string) (string, error) {
	survey := session.Survey
	if survey == nil {
		session.State = models.StateIdle
		if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
			return "", err
		}

		return "Usa /encuesta para comenzar la encuesta.", nil
	}

	survey.Answers = append(survey.Answers, text)
	survey.Index++

	if survey.Index < len(s.questions) {
		if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
			return "", err
		}

		return s.questions[survey.Index], nil
	}

	summary := s.formatSurveySummary(survey)

	if err := s.telegramClient.SendMessage(ctx, s.adminChatID,
		fmt.Sprintf("📋 *Nuevo formulario completado:*\n\n%s", summary)); err != nil {
		s.logger.Error("Error al enviar el resumen de la encuesta al administrador",
			"error", err,
			"chatID", chatID,
		)
	}

	metrics.SurveysCompletedTotal.Inc()

	session.Survey = nil
	session.State = models.StateIdle

	if err := s.finishOrPut(ctx, chatID, session); err != nil {
		return "", err
	}

	return "¡Gracias por tus respuestas! ✅", nil
}

func (s *BotService) formatSurveySummary(survey *models.SurveyProgress) string {
	var sb strings.Builder

	for i, question := range s.questions {
		if i >= len(survey.Answers) {
			break
		}

		sb.WriteString(fmt.Sprintf("%s: %s\n", question, survey.Answers[i]))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (s *BotService) handleProductSelection(ctx context.Context, chatID int64, productID string) (string, error) {
	product, err := s.catalog.FindByID(productID)
	if err != nil {
		return "Ese producto ya no está disponible.", err
	}

	session, err := s.sessionRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}

	if session == nil {
		session = models.NewSession()
	}

	// Una nueva selección sobrescribe cualquier selección pendiente.
	session.Pending = &product
	session.State = models.StateAwaitingQuantity

	if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
		return "", err
	}

	return fmt.Sprintf("📦 Has elegido *%s*\nPor favor, indica la cantidad que deseas pedir:", product.Nombre), nil
}

func (s *BotService) handleQuantityInput(ctx context.Context, chatID int64, session *models.Session, text string) (string, error) {
	if session.Pending == nil {
		session.State = models.StateIdle
		if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
			return "", err
		}

		return "Usa /productos para elegir un producto.", nil
	}

	cantidad, err := parseCantidad(text)
	if err != nil {
		metrics.QuantityValidationErrors.Inc()

		// El estado no cambia: el usuario puede volver a intentarlo.
		return "⚠️ Por favor, escribe un número válido (ejemplo: 2).", nil
	}

	if session.Cart == nil {
		session.Cart = &models.Cart{}
	}

	session.Cart.Items = append(session.Cart.Items, models.LineItem{
		Product:  *session.Pending,
		Cantidad: cantidad,
	})

	session.Pending = nil
	session.State = models.StateReviewingCart

	if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
		return "", err
	}

	metrics.CartItemsAdded.Inc()

	summary := s.formatCartSummary(session.Cart)
	buttons := [][]domain.Button{
		{{Text: "🛒 Añadir más", Data: models.CallbackAddMore}},
		{{Text: "✅ Confirmar pedido", Data: models.CallbackConfirm}},
		{{Text: "❌ Cancelar pedido", Data: models.CallbackCancel}},
	}

	if err := s.telegramClient.SendMessageWithKeyboard(ctx, chatID, summary, buttons); err != nil {
		return "", err
	}

	return "", nil
}

func (s *BotService) formatCartSummary(cart *models.Cart) string {
	var sb strings.Builder

	sb.WriteString("🛒 *Tu pedido:*\n\n")

	for i, item := range cart.Items {
		sb.WriteString(fmt.Sprintf("%d. %s x%d\n", i+1, item.Product.Nombre, item.Cantidad))
	}

	sb.WriteString(fmt.Sprintf("\nTotal: %d unidad(es)\n¿Qué quieres hacer?", cart.TotalUnits()))

	return sb.String()
}

func (s *BotService) handleAddMore(ctx context.Context, chatID int64) (string, error) {
	session, err := s.sessionRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}

	if session != nil {
		session.State = models.StateIdle

		if err := s.sessionRepo.Put(ctx, chatID, session); err != nil {
			return "", err
		}
	}

	return "Usa /productos para seguir viendo el catálogo. Tu carrito se conserva.", nil
}

func (s *BotService) handleConfirmOrder(ctx context.Context, callback *models.Callback) (string, error) {
	session, err := s.sessionRepo.Get(ctx, callback.ChatID)
	if err != nil {
		return "", err
	}

	if session == nil || session.Cart.IsEmpty() {
		return "Tu carrito está vacío. Usa /productos para elegir algo primero.",
			&domainerrors.ErrCarritoVacio{ChatID: callback.ChatID}
	}

	order := models.NewOrder(callback.UserID, callback.Username, callback.FullName, session.Cart, s.now())

	start := time.Now()

	// La sesión no se toca hasta saber si el envío tuvo éxito: si falla, el
	// carrito queda intacto y el usuario puede confirmar de nuevo.
	if err := s.orderNotifier.SubmitOrder(ctx, order); err != nil {
		metrics.RecordOrder("error", time.Since(start))

		submitErr := &domainerrors.ErrEnvioPedido{Cause: err}

		s.logger.Error("Error al enviar el pedido",
			"error", err,
			"chatID", callback.ChatID,
		)

		return fmt.Sprintf("❌ No se pudo enviar tu pedido: %v\nTu carrito se conserva, inténtalo de nuevo.", err),
			submitErr
	}

	metrics.RecordOrder("success", time.Since(start))

	if s.orderLog != nil {
		if err := s.orderLog.Append(order); err != nil {
			s.logger.Error("Error al anotar el pedido en el registro local",
				"error", err,
			)
		}
	}

	s.notifyAdminOrder(ctx, order, session.Cart)

	session.Cart = nil
	session.State = models.StateIdle

	if err := s.finishOrPut(ctx, callback.ChatID, session); err != nil {
		return "", err
	}

	return "✅ ¡Pedido confirmado! El administrador se pondrá en contacto contigo pronto.", nil
}

func (s *BotService) notifyAdminOrder(ctx context.Context, order *models.Order, cart *models.Cart) {
	var sb strings.Builder

	sb.WriteString("📦 *Nueva solicitud de producto*\n\n")
	sb.WriteString(fmt.Sprintf("👤 Usuario: %s\n", order.FullName))
	sb.WriteString(fmt.Sprintf("🆔 ID: %d\n", order.UserID))

	username := order.Username
	if username == "" {
		username = "no tiene"
	}

	sb.WriteString(fmt.Sprintf("📱 Usuario Telegram: @%s\n\n", username))

	for _, item := range order.Items {
		sb.WriteString(fmt.Sprintf("🛍️ Producto: *%s*\n📊 Cantidad: *%d*\n", item.Product, item.Cantidad))
	}

	caption := sb.String()

	// Como el bot original: la foto del primer producto acompaña el resumen.
	imagen := cart.Items[0].Product.Imagen

	var err error
	if imagen != "" {
		err = s.telegramClient.SendPhoto(ctx, s.adminChatID, imagen, caption, nil)
	} else {
		err = s.telegramClient.SendMessage(ctx, s.adminChatID, caption)
	}

	if err != nil {
		s.logger.Error("Error al notificar el pedido al administrador",
			"error", err,
			"userID", order.UserID,
		)
	}
}

func (s *BotService) handleCancelOrder(ctx context.Context, chatID int64) (string, error) {
	session, err := s.sessionRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}

	if session != nil {
		session.Cart = nil
		session.Pending = nil

		// Cancelar el pedido no interrumpe una encuesta en curso: el siguiente
		// texto libre sigue siendo una respuesta.
		if session.Survey != nil {
			session.State = models.StateInSurvey
		} else {
			session.State = models.StateIdle
		}

		if err := s.finishOrPut(ctx, chatID, session); err != nil {
			return "", err
		}
	}

	return "❌ Pedido cancelado. Puedes volver a empezar con /productos.", nil
}

// finishOrPut elimina la sesión cuando ya no guarda nada.
func (s *BotService) finishOrPut(ctx context.Context, chatID int64, session *models.Session) error {
	if session.Empty() {
		return s.sessionRepo.Remove(ctx, chatID)
	}

	return s.sessionRepo.Put(ctx, chatID, session)
}

func parseCantidad(text string) (int, error) {
	cantidad, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || cantidad <= 0 {
		return 0, &domainerrors.ErrCantidadInvalida{Texto: text}
	}

	return cantidad, nil
}
