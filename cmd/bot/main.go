package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/devsolaris/natursur-bot/internal/bot/audit"
	"github.com/devsolaris/natursur-bot/internal/bot/clients"
	"github.com/devsolaris/natursur-bot/internal/bot/domain"
	"github.com/devsolaris/natursur-bot/internal/bot/notify"
	"github.com/devsolaris/natursur-bot/internal/bot/repository"
	botservice "github.com/devsolaris/natursur-bot/internal/bot/service"
	"github.com/devsolaris/natursur-bot/internal/bot/telegram"
	"github.com/devsolaris/natursur-bot/internal/catalog"
	catalogrepo "github.com/devsolaris/natursur-bot/internal/catalog/repository"
	"github.com/devsolaris/natursur-bot/internal/common/metrics"
	"github.com/devsolaris/natursur-bot/internal/common/middleware"
	"github.com/devsolaris/natursur-bot/internal/config"
	"github.com/devsolaris/natursur-bot/internal/database"
	"github.com/devsolaris/natursur-bot/pkg"
)

func gracefulShutdown(poller *telegram.Poller, digest *botservice.DigestService,
	metricsServer *metrics.MetricsServer, cancel context.CancelFunc,
	stopCh <-chan struct{}, appLogger *slog.Logger) {
	<-stopCh
	appLogger.Info("Señal de apagado recibida")

	poller.Stop()

	if digest != nil {
		digest.Stop()
	}

	cancel()

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := metricsServer.Stop(ctx); err != nil {
		appLogger.Error("Error al detener el servidor de métricas",
			"error", err,
		)
	}

	appLogger.Info("Bot detenido correctamente")
}

func setupTelegramCommands(telegramClient domain.TelegramClientAPI, appLogger *slog.Logger) {
	botCommands := []domain.BotCommand{
		{Command: "start", Description: "Empezar a usar el bot"},
		{Command: "help", Description: "Ver la ayuda y los comandos disponibles"},
		{Command: "encuesta", Description: "Responder el formulario de bienvenida"},
		{Command: "productos", Description: "Ver el catálogo de productos"},
	}

	ctx := context.Background()
	if err := telegramClient.SetMyCommands(ctx, botCommands); err != nil {
		appLogger.Error("Error al registrar los comandos del bot",
			"error", err,
		)
	} else {
		appLogger.Info("Comandos del bot registrados correctamente")
	}
}

func watchSignals(stopCh chan<- struct{}, appLogger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLogger.Info("Señal del sistema recibida",
			"signal", sig.String(),
		)
		close(stopCh)
	}()
}

func loadCatalog(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*catalog.Catalog, *database.PostgresDB, error) {
	var db *database.PostgresDB

	if cfg.CatalogSource != config.FileCatalog {
		var err error

		db, err = database.NewPostgresDB(ctx, cfg, appLogger)
		if err != nil {
			return nil, nil, fmt.Errorf("error de conexión a la base de datos: %w", err)
		}

		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	source, err := catalogrepo.NewFactory(db, cfg, appLogger).CreateSource()
	if err != nil {
		if db != nil {
			db.Close()
		}

		return nil, nil, fmt.Errorf("error al crear la fuente del catálogo: %w", err)
	}

	products, err := source.List(ctx)
	if err != nil {
		if db != nil {
			db.Close()
		}

		return nil, nil, fmt.Errorf("error al leer el catálogo: %w", err)
	}

	cat, err := catalog.New(products, string(cfg.CatalogSource))
	if err != nil {
		if db != nil {
			db.Close()
		}

		return nil, nil, err
	}

	appLogger.Info("Catálogo cargado",
		"source", cfg.CatalogSource,
		"products", cat.Len(),
	)

	return cat, db, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error al arrancar el servicio: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen // La longitud se debe a la inicialización secuencial de todos los componentes.
func run() error {
	appLogger := pkg.NewLogger(os.Stdout)

	cfg := config.LoadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cat, db, err := loadCatalog(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Error al cargar el catálogo",
			"error", err,
		)

		return err
	}

	if db != nil {
		defer db.Close()
	}

	sessionRepo, err := repository.NewFactory(cfg, appLogger).CreateSessionRepository()
	if err != nil {
		appLogger.Error("Error al crear el almacén de sesiones",
			"error", err,
		)

		return fmt.Errorf("error al crear el almacén de sesiones: %w", err)
	}

	telegramClient := clients.NewTelegramClient(cfg.TelegramBotToken, appLogger)
	setupTelegramCommands(telegramClient, appLogger)

	orderNotifier, err := notify.NewNotifierFactory(cfg, appLogger).CreateNotifier()
	if err != nil {
		appLogger.Error("Error al crear el notificador de pedidos",
			"error", err,
		)

		return fmt.Errorf("error al crear el notificador de pedidos: %w", err)
	}

	var auditLog *audit.OrderLog

	// Una interfaz con puntero nulo no es nula, así que solo se asigna
	// cuando el registro está activado.
	var orderLog botservice.OrderLog

	if cfg.OrderLogEnabled {
		auditLog = audit.NewOrderLog(cfg.OrderLogFile, appLogger)
		orderLog = auditLog
	}

	service := botservice.NewBotService(
		sessionRepo,
		cat,
		telegramClient,
		orderNotifier,
		orderLog,
		cfg.SurveyQuestions,
		cfg.AdminChatID,
		appLogger,
	)

	rateLimiter := middleware.NewChatRateLimiter(ctx, cfg.RateLimitMessages, cfg.RateLimitWindow, appLogger)

	poller := telegram.NewPoller(telegramClient, service, rateLimiter, appLogger)
	go poller.Start()

	var digest *botservice.DigestService

	if cfg.DigestEnabled && auditLog != nil {
		digest = botservice.NewDigestService(cfg, telegramClient, auditLog, appLogger)
		digest.Start(ctx)
	}

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, appLogger)

	stopCh := make(chan struct{})
	watchSignals(stopCh, appLogger)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Error en el servidor de métricas",
				"error", err,
			)
			close(stopCh)
		}
	}()

	gracefulShutdown(poller, digest, metricsServer, cancel, stopCh, appLogger)

	return nil
}
