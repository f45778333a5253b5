// Package portal собирает HTTP-приложение портала: клиент удалённого сервиса,
// хранилище слотов состояния, сервисы и маршруты.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/flagship-portal/internal/cache"
	"github.com/magabrotheeeer/flagship-portal/internal/config"
	"github.com/magabrotheeeer/flagship-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/flagship-portal/internal/lib/sl"
	"github.com/magabrotheeeer/flagship-portal/internal/metrics"
	"github.com/magabrotheeeer/flagship-portal/internal/migrations"
	"github.com/magabrotheeeer/flagship-portal/internal/rabbitmq"
	"github.com/magabrotheeeer/flagship-portal/internal/remote"
	authservice "github.com/magabrotheeeer/flagship-portal/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/flagship-portal/internal/services/dashboard"
	flagshipservice "github.com/magabrotheeeer/flagship-portal/internal/services/flagship"
	janitorservice "github.com/magabrotheeeer/flagship-portal/internal/services/janitor"
	refundservice "github.com/magabrotheeeer/flagship-portal/internal/services/refund"
	registrationservice "github.com/magabrotheeeer/flagship-portal/internal/services/registration"
	sessionservice "github.com/magabrotheeeer/flagship-portal/internal/services/session"
	userservice "github.com/magabrotheeeer/flagship-portal/internal/services/user"
	"github.com/magabrotheeeer/flagship-portal/internal/state"
	"github.com/magabrotheeeer/flagship-portal/internal/storage/repository"
)

const (
	migrationsPath  = "./migrations"
	janitorInterval = 10 * time.Minute
	shutdownTimeout = 15 * time.Second
)

// App — HTTP-сервер портала со всеми зависимостями.
type App struct {
	server  *http.Server
	logger  *slog.Logger
	janitor *janitorservice.JanitorService
	closers []func() error
}

// stateBackend — выбранное хранилище слотов.
type stateBackend struct {
	persister state.Persister
	pinger    health.Pinger
	purgers   []janitorservice.Purger
	closers   []func() error
}

func waitForDB(ctx context.Context, db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(ctx, db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func newStateBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stateBackend, error) {
	switch cfg.State.Backend {
	case config.StatePostgres:
		db, err := repository.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, fmt.Errorf("failed to connect storage: %w", err)
		}
		if err := migrations.Run(db.DB, migrationsPath); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		if err := waitForDB(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stateBackend{
			persister: state.NewPostgresPersister(db, cfg.Session.TTL),
			pinger:    db,
			purgers:   []janitorservice.Purger{db},
			closers:   []func() error{db.Close},
		}, nil
	default:
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("cache not initialized: %w", err)
		}
		return &stateBackend{
			persister: state.NewRedisPersister(c, cfg.Session.TTL),
			pinger:    c,
			closers:   []func() error{c.Close},
		}, nil
	}
}

// newPublisher подключается к RabbitMQ, если он настроен. Без него решения
// по возвратам принимаются, но события не публикуются.
func newPublisher(cfg config.RabbitMQ, logger *slog.Logger) (refundservice.Publisher, []func() error, error) {
	if cfg.URL == "" {
		logger.Warn("rabbitmq is not configured, refund events are disabled")
		return nil, nil, nil
	}
	conn, err := rabbitmq.Connect(cfg.URL, cfg.Retries, cfg.Delay)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		closeAMQP(nil, conn, logger)
		return nil, nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}
	return rabbitmq.NewPublisher(ch), []func() error{ch.Close, conn.Close}, nil
}

func closeAMQP(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", sl.Err(err))
		}
	}
}

// New создает приложение по конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	backend, err := newStateBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	publisher, amqpClosers, err := newPublisher(cfg.RabbitMQ, logger)
	if err != nil {
		closeAll(backend.closers, logger)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	remoteClient := remote.New(cfg.Remote.BaseURL, cfg.Remote.Timeout, metrics.NewRemote(reg))

	deps := NewDependencies(remoteClient, backend.persister, publisher, jwt.NewJWTMaker(cfg.Session.SecretKey, cfg.Session.TTL), logger)
	deps.Storage = backend.pinger
	janitor := janitorservice.NewJanitorService(logger, append(backend.purgers, deps.Registrations)...)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, deps, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server:  srv,
		logger:  logger,
		janitor: janitor,
		closers: append(amqpClosers, backend.closers...),
	}, nil
}

// Dependencies — сервисы, из которых строятся обработчики.
type Dependencies struct {
	Auth          *authservice.AuthService
	Sessions      *sessionservice.SessionService
	Registrations *registrationservice.Registry
	Flagships     *flagshipservice.FlagshipService
	Refunds       *refundservice.RefundService
	Users         *userservice.UserService
	Dashboard     *dashboardservice.DashboardService
	Storage       health.Pinger
}

// NewDependencies связывает сервисы с клиентом удалённого сервиса и хранилищем слотов.
// publisher может быть nil.
func NewDependencies(client *remote.Client, persister state.Persister, publisher refundservice.Publisher, maker jwt.Maker, logger *slog.Logger) Dependencies {
	registrations := registrationservice.NewRegistry(client, logger, maker.TTL())
	return Dependencies{
		Auth:          authservice.NewAuthService(client, logger),
		Sessions:      sessionservice.NewSessionService(persister, maker, logger, registrations),
		Registrations: registrations,
		Flagships:     flagshipservice.NewFlagshipService(client, logger),
		Refunds:       refundservice.NewRefundService(client, publisher, logger),
		Users:         userservice.NewUserService(client, logger),
		Dashboard:     dashboardservice.NewDashboardService(client, logger),
	}
}

// Run запускает сервер и фоновую очистку слотов, останавливает их по отмене ctx.
func (a *App) Run(ctx context.Context) error {
	go a.janitor.Run(ctx, janitorInterval)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		closeAll(a.closers, a.logger)
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		closeAll(a.closers, a.logger)
		return err
	}
}

func closeAll(closers []func() error, logger *slog.Logger) {
	for _, c := range closers {
		if err := c(); err != nil {
			logger.Error("failed to close resource", sl.Err(err))
		}
	}
}
