// Package bootstrap wires the gateway's infrastructure and use cases into a
// ready-to-run application.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/kucp1127/clarityvault-gateway/internal/auth"
	"github.com/kucp1127/clarityvault-gateway/internal/config"
	"github.com/kucp1127/clarityvault-gateway/internal/core/ports"
	"github.com/kucp1127/clarityvault-gateway/internal/core/usecase"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/extractor"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/provider"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/queue/nats"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/repository/postgres"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/resilience"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/sessionstore"
	"github.com/kucp1127/clarityvault-gateway/internal/infrastructure/storage/localfs"
	"github.com/kucp1127/clarityvault-gateway/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Metrics *metrics.GatewayMetrics

	Auth  *auth.Manager
	Queue ports.MessageQueue

	UploadUC    *usecase.UploadUseCase
	AnalyzeUC   *usecase.AnalyzeUseCase
	ClassifyUC  *usecase.ClassifyUseCase
	DocumentsUC *usecase.DocumentsUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	docs := postgres.NewDocumentRepository(db)
	users := postgres.NewUserRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	sessions, sessionsClose, err := newSessionStore(ctx, cfg)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("init session store: %w", err)
	}

	gatewayMetrics := metrics.NewGatewayMetrics(service)

	providerClient := provider.New(
		cfg.ProviderBaseURL,
		provider.WithTimeouts(cfg.ProviderProcessTimeout(), cfg.ProviderQueryTimeout()),
	)
	analysisProvider := metrics.NewInstrumentedProvider(providerClient, gatewayMetrics, service)

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled: cfg.ProviderBreakerEnabled,
	})

	authManager := auth.NewManager(users, sessions, cfg.JWTSecret, cfg.SessionTTL())
	textExtractor := extractor.New(storage)

	uploadUC := usecase.NewUploadUseCase(docs, storage, queue, cfg.MaxUploadBytes)
	analyzeUC := usecase.NewAnalyzeUseCase(analysisProvider, executor)
	classifyUC := usecase.NewClassifyUseCase(docs, storage, analysisProvider, executor, cfg.ProviderServiceToken)
	classifyUC.OnFallback = func() { gatewayMetrics.RecordClassifyFallback(service) }
	documentsUC := usecase.NewDocumentsUseCase(docs, storage, textExtractor)

	return &App{
		Config:  cfg,
		Metrics: gatewayMetrics,

		Auth:  authManager,
		Queue: queue,

		UploadUC:    uploadUC,
		AnalyzeUC:   analyzeUC,
		ClassifyUC:  classifyUC,
		DocumentsUC: documentsUC,

		closeFn: func() {
			queue.Close()
			if sessionsClose != nil {
				_ = sessionsClose()
			}
			_ = db.Close()
		},
	}, nil
}

func newSessionStore(ctx context.Context, cfg config.Config) (ports.SessionStore, func() error, error) {
	switch cfg.SessionBackend {
	case "redis":
		store, err := sessionstore.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "", "memory":
		return sessionstore.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
