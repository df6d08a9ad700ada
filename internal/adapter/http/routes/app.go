package routes

import (
	"context"
	"fmt"
	"log"

	"instala_control/internal/adapter/http/handlers"
	"instala_control/internal/adapter/persistence/gormrepo"
	"instala_control/internal/adapter/persistence/repository"
	"instala_control/internal/config"
	"instala_control/internal/infrastructure/database"
	"instala_control/internal/infrastructure/events"
	"instala_control/internal/infrastructure/identity"
	"instala_control/internal/infrastructure/notify"
	"instala_control/internal/infrastructure/payments"
	"instala_control/internal/infrastructure/pdf"
	"instala_control/internal/infrastructure/scheduler"
	"instala_control/internal/store"
	"instala_control/internal/usecase"
	"instala_control/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

type repositories struct {
	services     interfaces.IServiceRepository
	appointments interfaces.IAppointmentRepository
	budgets      interfaces.IBudgetRepository
	settings     interfaces.ISettingsRepository
	payments     interfaces.IPaymentRepository
}

// App is the wired application: the router plus the background pieces
// main has to start and stop.
type App struct {
	Router   *gin.Engine
	Reminder *scheduler.AgendaReminder

	closers []func() error
}

// Close releases the broker connection and database handles.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[app] close failed err=%v", err)
		}
	}
}

// Build connects storage and the change feed and wires every use case and
// handler from cfg.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	repos, err := openRepositories(ctx, cfg, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	feed, err := openFeed(cfg, app)
	if err != nil {
		app.Close()
		return nil, err
	}

	issuer, err := identity.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		app.Close()
		return nil, err
	}

	var paymentGateway interfaces.IPaymentGateway
	if cfg.PaymentGatewayMock {
		log.Printf("[app] payment gateway in mock mode")
	} else if mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken); err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	serviceUseCase := usecase.NewServiceUseCase(repos.services, repos.appointments, feed)
	appointmentUseCase := usecase.NewAppointmentUseCase(repos.appointments, repos.budgets, serviceUseCase, feed)
	budgetUseCase := usecase.NewBudgetUseCase(repos.budgets, repos.settings, pdf.NewBudgetRenderer(), feed)
	settingsUseCase := usecase.NewSettingsUseCase(repos.settings, feed)
	dashboardUseCase := usecase.NewDashboardUseCase(repos.services, repos.appointments)
	paymentUseCase := usecase.NewPaymentUseCase(repos.payments, repos.budgets, paymentGateway, usecase.PaymentOptions{
		Mock:              cfg.PaymentGatewayMock,
		SandboxPayerEmail: cfg.SandboxPayerEmail(),
	})
	authUseCase := usecase.NewAuthUseCase(issuer)

	storeRepos := store.Repositories{
		Services:     repos.services,
		Appointments: repos.appointments,
		Budgets:      repos.budgets,
		Settings:     repos.settings,
	}

	app.Router = NewRouter(Handlers{
		Services:     handlers.NewServiceHandler(serviceUseCase),
		Appointments: handlers.NewAppointmentHandler(appointmentUseCase),
		Budgets:      handlers.NewBudgetHandler(budgetUseCase),
		Payments:     handlers.NewPaymentHandler(paymentUseCase, cfg.PaymentGatewayMock),
		Settings:     handlers.NewSettingsHandler(settingsUseCase),
		Dashboard:    handlers.NewDashboardHandler(dashboardUseCase),
		Auth:         handlers.NewAuthHandler(authUseCase),
		Stream: handlers.NewStreamHandler(func(userID string) *store.RecordStore {
			return store.New(userID, storeRepos, feed)
		}),
	}, issuer)

	if cfg.RemindersEnabled() {
		notifier := notify.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsApp)
		reminder, err := scheduler.NewAgendaReminder(cfg.ReminderCron, usecase.NewReminderUseCase(repos.settings, repos.appointments, notifier))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("reminder schedule: %w", err)
		}
		app.Reminder = reminder
	} else {
		log.Printf("[app] twilio not configured; agenda reminders disabled")
	}

	return app, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, app *App) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return repositories{}, fmt.Errorf("connect dynamodb: %w", err)
		}
		if cfg.DynamoDBEndpoint != "" {
			if err := database.EnsureTables(ctx, ddb, database.Schemas(cfg.Tables)); err != nil {
				return repositories{}, fmt.Errorf("ensure tables: %w", err)
			}
		}
		return repositories{
			services:     repository.NewServiceDynamoRepository(ddb, cfg.Tables.Services),
			appointments: repository.NewAppointmentDynamoRepository(ddb, cfg.Tables.Appointments),
			budgets:      repository.NewBudgetDynamoRepository(ddb, cfg.Tables.Budgets),
			settings:     repository.NewSettingsDynamoRepository(ddb, cfg.Tables.Settings),
			payments:     repository.NewPaymentDynamoRepository(ddb, cfg.Tables.Payments),
		}, nil
	default:
		db, err := database.OpenGorm(cfg)
		if err != nil {
			return repositories{}, err
		}
		if sqlDB, err := db.DB(); err == nil {
			app.closers = append(app.closers, sqlDB.Close)
		}
		if err := gormrepo.Migrate(db); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
		return repositories{
			services:     gormrepo.NewServiceRepository(db),
			appointments: gormrepo.NewAppointmentRepository(db),
			budgets:      gormrepo.NewBudgetRepository(db),
			settings:     gormrepo.NewSettingsRepository(db),
			payments:     gormrepo.NewPaymentRepository(db),
		}, nil
	}
}

func openFeed(cfg *config.Config, app *App) (interfaces.IChangeFeed, error) {
	if cfg.ChangeFeed != config.FeedAMQP {
		return events.NewMemoryFeed(), nil
	}
	feed, err := events.NewAMQPFeed(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	app.closers = append(app.closers, feed.Close)
	return feed, nil
}
