package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devsolaris/natursur-bot/internal/bot/domain"
	domainmocks "github.com/devsolaris/natursur-bot/internal/bot/domain/mocks"
	notifymocks "github.com/devsolaris/natursur-bot/internal/bot/notify/mocks"
	"github.com/devsolaris/natursur-bot/internal/bot/service"
	"github.com/devsolaris/natursur-bot/internal/bot/service/mocks"
	"github.com/devsolaris/natursur-bot/internal/catalog"
	domainerrors "github.com/devsolaris/natursur-bot/internal/domain/errors"
	"github.com/devsolaris/natursur-bot/internal/domain/models"
	"github.com/devsolaris/natursur-bot/pkg"
)

const (
	testChatID   = int64(123456)
	testUserID   = int64(654321)
	testUsername = "mariapg"
	testFullName = "María Pérez"
	testAdminID  = int64(999999)
)

var testQuestions = []string{
	"¿Cuál es tu nombre?",
	"¿Cuál es tu objetivo principal?",
	"¿Has probado productos Herbalife antes?",
	"¿Cómo prefieres que te contactemos?",
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.New([]models.Product{
		{
			ID:          "f1",
			Nombre:      "Batido F1 Herbalife",
			Descripcion: "Batido nutricional sustitutivo de comidas.",
			Imagen:      "https://example.com/f1.jpg",
			Precio:      "38,90 €",
		},
		{
			ID:     "te_termogénico",
			Nombre: "Té Termogénico",
		},
	}, "test")
	require.NoError(t, err)

	return cat
}

type serviceFixture struct {
	sessionRepo    *mocks.SessionRepository
	telegramClient *domainmocks.TelegramClientAPI
	orderNotifier  *notifymocks.OrderNotifier
	orderLog       *mocks.OrderLog
	service        *service.BotService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		sessionRepo:    new(mocks.SessionRepository),
		telegramClient: new(domainmocks.TelegramClientAPI),
		orderNotifier:  new(notifymocks.OrderNotifier),
		orderLog:       new(mocks.OrderLog),
	}

	f.service = service.NewBotService(
		f.sessionRepo,
		newTestCatalog(t),
		f.telegramClient,
		f.orderNotifier,
		f.orderLog,
		testQuestions,
		testAdminID,
		pkg.NewLogger(testWriter{t}),
	)

	return f
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestBotService_ProcessCommand_UnknownCommand(t *testing.T) {
	f := newServiceFixture(t)

	command := &models.Command{
		ChatID:   testChatID,
		UserID:   testUserID,
		Text:     "/ayudame",
		Username: testUsername,
		Type:     models.CommandUnknown,
	}

	ctx := context.Background()

	response, err := f.service.ProcessCommand(ctx, command)

	assert.Error(t, err)
	assert.IsType(t, &domainerrors.ErrComandoDesconocido{}, err)
	assert.Contains(t, response, "Comando desconocido")
}

func TestBotService_ProcessCommand_StartCommand(t *testing.T) {
	f := newServiceFixture(t)

	command := &models.Command{
		ChatID: testChatID,
		UserID: testUserID,
		Text:   "/start",
		Type:   models.CommandStart,
	}

	ctx := context.Background()

	response, err := f.service.ProcessCommand(ctx, command)

	require.NoError(t, err)
	assert.Contains(t, response, "¡Hola!")
	assert.Contains(t, response, "/encuesta")
	assert.Contains(t, response, "/productos")
}

func TestBotService_ProcessCommand_HelpCommand(t *testing.T) {
	f := newServiceFixture(t)

	command := &models.Command{
		ChatID: testChatID,
		Text:   "/help",
		Type:   models.CommandHelp,
	}

	ctx := context.Background()

	response, err := f.service.ProcessCommand(ctx, command)

	require.NoError(t, err)
	assert.Contains(t, response, "/start")
	assert.Contains(t, response, "/help")
	assert.Contains(t, response, "/encuesta")
	assert.Contains(t, response, "/productos")
}

func TestBotService_ProcessCommand_EncuestaStartsSurvey(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	f.sessionRepo.On("Get", ctx, testChatID).Return(nil, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateInSurvey && s.Survey != nil && s.Survey.Index == 0 && len(s.Survey.Answers) == 0
	})).Return(nil)

	response, err := f.service.ProcessCommand(ctx, &models.Command{
		ChatID: testChatID,
		Type:   models.CommandEncuesta,
	})

	require.NoError(t, err)
	assert.Equal(t, testQuestions[0], response)
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCommand_EncuestaRestartsAndKeepsCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:  models.StateInSurvey,
		Survey: &models.SurveyProgress{Index: 2, Answers: []string{"María", "Bajar de peso"}},
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"}, Cantidad: 2},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateInSurvey &&
			s.Survey.Index == 0 && len(s.Survey.Answers) == 0 &&
			s.Cart != nil && len(s.Cart.Items) == 1
	})).Return(nil)

	response, err := f.service.ProcessCommand(ctx, &models.Command{
		ChatID: testChatID,
		Type:   models.CommandEncuesta,
	})

	require.NoError(t, err)
	assert.Equal(t, testQuestions[0], response)
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCommand_EncuestaWithoutQuestions(t *testing.T) {
	sessionRepo := new(mocks.SessionRepository)

	svc := service.NewBotService(
		sessionRepo,
		newTestCatalog(t),
		new(domainmocks.TelegramClientAPI),
		new(notifymocks.OrderNotifier),
		new(mocks.OrderLog),
		nil,
		testAdminID,
		pkg.NewLogger(testWriter{t}),
	)

	response, err := svc.ProcessCommand(context.Background(), &models.Command{
		ChatID: testChatID,
		Type:   models.CommandEncuesta,
	})

	require.NoError(t, err)
	assert.Equal(t, "La encuesta no está disponible en este momento.", response)
	sessionRepo.AssertNotCalled(t, "Get")
	sessionRepo.AssertNotCalled(t, "Put")
}

func TestBotService_ProcessCommand_ProductosSendsCatalog(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	f.telegramClient.On("SendPhoto", ctx, testChatID, "https://example.com/f1.jpg",
		"*Batido F1 Herbalife*\nBatido nutricional sustitutivo de comidas.\n💶 38,90 €",
		[][]domain.Button{{{Text: "🛒 Solicitar", Data: "solicitar_f1"}}},
	).Return(nil)
	f.telegramClient.On("SendPhoto", ctx, testChatID, "",
		"*Té Termogénico*\n",
		[][]domain.Button{{{Text: "🛒 Solicitar", Data: "solicitar_te_termogénico"}}},
	).Return(nil)

	response, err := f.service.ProcessCommand(ctx, &models.Command{
		ChatID: testChatID,
		Type:   models.CommandProductos,
	})

	require.NoError(t, err)
	assert.Empty(t, response)
	f.telegramClient.AssertExpectations(t)
}

func TestBotService_ProcessMessage_WithoutSession(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	f.sessionRepo.On("Get", ctx, testChatID).Return(nil, nil)

	response, err := f.service.ProcessMessage(ctx, testChatID, testUserID, "hola", testUsername, testFullName)

	require.NoError(t, err)
	assert.Contains(t, response, "/productos")
	assert.Contains(t, response, "/encuesta")
}

func TestBotService_ProcessMessage_SurveyAdvancesToNextQuestion(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:  models.StateInSurvey,
		Survey: &models.SurveyProgress{Index: 0, Answers: []string{}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.Survey.Index == 1 && len(s.Survey.Answers) == 1 && s.Survey.Answers[0] == "María"
	})).Return(nil)

	response, err := f.service.ProcessMessage(ctx, testChatID, testUserID, "María", testUsername, testFullName)

	require.NoError(t, err)
	assert.Equal(t, testQuestions[1], response)
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessMessage_SurveyCompletionNotifiesAdmin(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:  models.StateInSurvey,
		Survey: &models.SurveyProgress{Index: 3, Answers: []string{"María", "Bajar de peso", "No"}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.telegramClient.On("SendMessage", ctx, testAdminID,
		"📋 *Nuevo formulario completado:*\n\n"+
			"¿Cuál es tu nombre?: María\n"+
			"¿Cuál es tu objetivo principal?: Bajar de peso\n"+
			"¿Has probado productos Herbalife antes?: No\n"+
			"¿Cómo prefieres que te contactemos?: Por WhatsApp",
	).Return(nil)
	// Sin carrito ni selección pendiente, la sesión queda vacía y se elimina.
	f.sessionRepo.On("Remove", ctx, testChatID).Return(nil)

	response, err := f.service.ProcessMessage(ctx, testChatID, testUserID, "Por WhatsApp", testUsername, testFullName)

	require.NoError(t, err)
	assert.Contains(t, response, "¡Gracias por tus respuestas!")
	f.sessionRepo.AssertExpectations(t)
	f.telegramClient.AssertExpectations(t)
}

func TestBotService_ProcessCallback_ProductSelection(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	f.sessionRepo.On("Get", ctx, testChatID).Return(nil, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateAwaitingQuantity && s.Pending != nil && s.Pending.ID == "f1"
	})).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		UserID: testUserID,
		Data:   "solicitar_f1",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "Batido F1 Herbalife")
	assert.Contains(t, response, "indica la cantidad")
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCallback_SelectionOverwritesPending(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:   models.StateAwaitingQuantity,
		Pending: &models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateAwaitingQuantity && s.Pending.ID == "te_termogénico"
	})).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "solicitar_te_termogénico",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "Té Termogénico")
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCallback_UnknownProduct(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "solicitar_inexistente",
	})

	assert.Error(t, err)
	assert.IsType(t, &domainerrors.ErrProductoNoEncontrado{}, err)
	assert.Contains(t, response, "ya no está disponible")
	f.sessionRepo.AssertNotCalled(t, "Put")
}

func TestBotService_ProcessMessage_InvalidQuantityKeepsState(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	for _, text := range []string{"abc", "0", "-3", "2.5", ""} {
		session := &models.Session{
			State:   models.StateAwaitingQuantity,
			Pending: &models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"},
		}

		f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil).Once()

		response, err := f.service.ProcessMessage(ctx, testChatID, testUserID, text, testUsername, testFullName)

		require.NoError(t, err)
		assert.Equal(t, "⚠️ Por favor, escribe un número válido (ejemplo: 2).", response)
	}

	// El reintento no toca el almacén: el estado queda tal cual.
	f.sessionRepo.AssertNotCalled(t, "Put")
	f.sessionRepo.AssertNotCalled(t, "Remove")
}

func TestBotService_ProcessMessage_ValidQuantityAddsToCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:   models.StateAwaitingQuantity,
		Pending: &models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"},
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "te_termogénico", Nombre: "Té Termogénico"}, Cantidad: 1},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateReviewingCart &&
			s.Pending == nil &&
			len(s.Cart.Items) == 2 &&
			s.Cart.Items[1].Product.ID == "f1" &&
			s.Cart.Items[1].Cantidad == 3
	})).Return(nil)
	f.telegramClient.On("SendMessageWithKeyboard", ctx, testChatID,
		"🛒 *Tu pedido:*\n\n1. Té Termogénico x1\n2. Batido F1 Herbalife x3\n\nTotal: 4 unidad(es)\n¿Qué quieres hacer?",
		[][]domain.Button{
			{{Text: "🛒 Añadir más", Data: "pedido_agregar"}},
			{{Text: "✅ Confirmar pedido", Data: "pedido_confirmar"}},
			{{Text: "❌ Cancelar pedido", Data: "pedido_cancelar"}},
		},
	).Return(nil)

	response, err := f.service.ProcessMessage(ctx, testChatID, testUserID, " 3 ", testUsername, testFullName)

	require.NoError(t, err)
	assert.Empty(t, response)
	f.sessionRepo.AssertExpectations(t)
	f.telegramClient.AssertExpectations(t)
}

func TestBotService_ProcessCallback_AddMoreKeepsCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State: models.StateReviewingCart,
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"}, Cantidad: 2},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.State == models.StateIdle && len(s.Cart.Items) == 1
	})).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "pedido_agregar",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "Tu carrito se conserva")
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCallback_ConfirmEmptyCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	f.sessionRepo.On("Get", ctx, testChatID).Return(nil, nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		UserID: testUserID,
		Data:   "pedido_confirmar",
	})

	assert.Error(t, err)
	assert.IsType(t, &domainerrors.ErrCarritoVacio{}, err)
	assert.Contains(t, response, "carrito está vacío")
	f.orderNotifier.AssertNotCalled(t, "SubmitOrder")
}

func TestBotService_ProcessCallback_ConfirmSubmitsOrder(t *testing.T) {
	f := newServiceFixture(t)

	now := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	f.service.WithClock(func() time.Time { return now })

	ctx := context.Background()

	session := &models.Session{
		State: models.StateReviewingCart,
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife", Imagen: "https://example.com/f1.jpg"}, Cantidad: 2},
			{Product: models.Product{ID: "te_termogénico", Nombre: "Té Termogénico"}, Cantidad: 1},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)

	expectedOrder := &models.Order{
		UserID:   testUserID,
		Username: testUsername,
		FullName: testFullName,
		Items: []models.OrderItem{
			{Product: "Batido F1 Herbalife", ProductID: "f1", Cantidad: 2},
			{Product: "Té Termogénico", ProductID: "te_termogénico", Cantidad: 1},
		},
		Timestamp: "2026-03-14 18:30:00",
	}

	f.orderNotifier.On("SubmitOrder", ctx, expectedOrder).Return(nil)
	f.orderLog.On("Append", expectedOrder).Return(nil)
	f.telegramClient.On("SendPhoto", ctx, testAdminID, "https://example.com/f1.jpg",
		"📦 *Nueva solicitud de producto*\n\n"+
			"👤 Usuario: María Pérez\n"+
			"🆔 ID: 654321\n"+
			"📱 Usuario Telegram: @mariapg\n\n"+
			"🛍️ Producto: *Batido F1 Herbalife*\n📊 Cantidad: *2*\n"+
			"🛍️ Producto: *Té Termogénico*\n📊 Cantidad: *1*\n",
		[][]domain.Button(nil),
	).Return(nil)
	f.sessionRepo.On("Remove", ctx, testChatID).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID:   testChatID,
		UserID:   testUserID,
		Username: testUsername,
		FullName: testFullName,
		Data:     "pedido_confirmar",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "¡Pedido confirmado!")
	f.orderNotifier.AssertExpectations(t)
	f.orderLog.AssertExpectations(t)
	f.telegramClient.AssertExpectations(t)
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCallback_ConfirmFailureKeepsCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State: models.StateReviewingCart,
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"}, Cantidad: 2},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.orderNotifier.On("SubmitOrder", ctx, mock.Anything).Return(errors.New("backend no disponible"))

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID:   testChatID,
		UserID:   testUserID,
		Username: testUsername,
		FullName: testFullName,
		Data:     "pedido_confirmar",
	})

	assert.Error(t, err)
	assert.IsType(t, &domainerrors.ErrEnvioPedido{}, err)
	assert.Contains(t, response, "No se pudo enviar tu pedido")
	assert.Contains(t, response, "backend no disponible")
	// El carrito queda intacto para poder reintentar.
	assert.Len(t, session.Cart.Items, 1)
	f.sessionRepo.AssertNotCalled(t, "Put")
	f.sessionRepo.AssertNotCalled(t, "Remove")
	f.orderLog.AssertNotCalled(t, "Append")
}

func TestBotService_ProcessCallback_CancelDestroysCart(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:   models.StateReviewingCart,
		Pending: &models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"},
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"}, Cantidad: 2},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Remove", ctx, testChatID).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "pedido_cancelar",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "Pedido cancelado")
	f.orderNotifier.AssertNotCalled(t, "SubmitOrder")
	f.sessionRepo.AssertExpectations(t)
}

func TestBotService_ProcessCallback_CancelSurveyInProgressKeepsSurvey(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	session := &models.Session{
		State:  models.StateInSurvey,
		Survey: &models.SurveyProgress{Index: 1, Answers: []string{"María"}},
		Cart: &models.Cart{Items: []models.LineItem{
			{Product: models.Product{ID: "f1", Nombre: "Batido F1 Herbalife"}, Cantidad: 1},
		}},
	}

	f.sessionRepo.On("Get", ctx, testChatID).Return(session, nil)
	f.sessionRepo.On("Put", ctx, testChatID, mock.MatchedBy(func(s *models.Session) bool {
		return s.Cart.IsEmpty() && s.Survey != nil && s.State == models.StateInSurvey
	})).Return(nil)

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "pedido_cancelar",
	})

	require.NoError(t, err)
	assert.Contains(t, response, "Pedido cancelado")
	f.sessionRepo.AssertExpectations(t)

	// El siguiente texto libre sigue contando como respuesta de la encuesta.
	answer, err := f.service.ProcessMessage(ctx, testChatID, testUserID, "Perder peso", testUsername, testFullName)

	require.NoError(t, err)
	assert.Equal(t, testQuestions[2], answer)
}

func TestBotService_ProcessCallback_UnknownCallback(t *testing.T) {
	f := newServiceFixture(t)

	ctx := context.Background()

	response, err := f.service.ProcessCallback(ctx, &models.Callback{
		ChatID: testChatID,
		Data:   "algo_raro",
	})

	assert.Error(t, err)
	assert.IsType(t, &domainerrors.ErrCallbackDesconocido{}, err)
	assert.Empty(t, response)
}
