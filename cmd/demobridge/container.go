package main

import (
	"context"
	"net/http"

	"go.uber.org/dig"
	"go.uber.org/zap"

	httphandler "github.com/ruudy-sib/demobridge/internal/adapter/primary/http"
	"github.com/ruudy-sib/demobridge/internal/adapter/primary/worker"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/analyticsclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/crmclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/kafkaproducer"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/storefactory"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain/service"
	"github.com/ruudy-sib/demobridge/internal/logging"
	"github.com/ruudy-sib/demobridge/internal/port/primary"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

func buildContainer(ctx context.Context) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return cfg, cfg.ValidateServer()
	}); err != nil {
		return nil, err
	}

	// --- Logger ---
	if err := c.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logging.New(cfg, appName)
	}); err != nil {
		return nil, err
	}

	// --- Secondary Adapters (infrastructure) ---

	// Key-value store, file or redis by configuration
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (*storefactory.Backend, error) {
		return storefactory.New(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(func(b *storefactory.Backend) secondary.KeyValueStore {
		return b.Store
	}); err != nil {
		return nil, err
	}

	// Remote API clients
	if err := c.Provide(crmclient.NewClient); err != nil {
		return nil, err
	}
	if err := c.Provide(func(client *crmclient.Client) secondary.CRMClient {
		return client
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(analyticsclient.NewClient); err != nil {
		return nil, err
	}
	if err := c.Provide(func(client *analyticsclient.Client) secondary.AnalyticsClient {
		return client
	}); err != nil {
		return nil, err
	}

	// Order event publisher; a no-op without brokers
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) secondary.EventPublisher {
		if len(cfg.KafkaBrokers) == 0 {
			logger.Info("no kafka brokers configured, order events disabled")
			return kafkaproducer.NopPublisher{}
		}
		return kafkaproducer.NewPublisher(cfg, logger)
	}); err != nil {
		return nil, err
	}

	// Collect all health checks
	if err := c.Provide(func(cfg *config.Config, b *storefactory.Backend) []secondary.HealthChecker {
		checks := []secondary.HealthChecker{b.Health}
		if len(cfg.KafkaBrokers) > 0 {
			checks = append(checks, kafkaproducer.NewHealthCheck(cfg.KafkaBrokers))
		}
		return checks
	}); err != nil {
		return nil, err
	}

	// --- Domain Services ---

	if err := c.Provide(service.NewManagerDirectory); err != nil {
		return nil, err
	}

	if err := c.Provide(func(
		crm secondary.CRMClient,
		analytics secondary.AnalyticsClient,
		managers *service.ManagerDirectory,
		publisher secondary.EventPublisher,
		cfg *config.Config,
		logger *zap.Logger,
	) *service.IntakeService {
		return service.NewIntakeService(crm, analytics, managers, publisher, cfg.Business, cfg.DefaultPhoneRegion, logger)
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(func(
		crm secondary.CRMClient,
		publisher secondary.EventPublisher,
		cfg *config.Config,
		logger *zap.Logger,
	) *service.RescheduleService {
		return service.NewRescheduleService(crm, publisher, cfg.Business, logger)
	}); err != nil {
		return nil, err
	}

	// Bind concrete services to the primary port interfaces
	if err := c.Provide(func(s *service.IntakeService) primary.IntakeService {
		return s
	}); err != nil {
		return nil, err
	}
	if err := c.Provide(func(s *service.RescheduleService) primary.RescheduleService {
		return s
	}); err != nil {
		return nil, err
	}
	if err := c.Provide(func(d *service.ManagerDirectory) primary.ManagerRefresher {
		return d
	}); err != nil {
		return nil, err
	}

	// --- Primary Adapters ---

	// HTTP router
	if err := c.Provide(func(
		intake primary.IntakeService,
		reschedule primary.RescheduleService,
		checks []secondary.HealthChecker,
		logger *zap.Logger,
	) http.Handler {
		return httphandler.NewRouter(intake, reschedule, checks, logger)
	}); err != nil {
		return nil, err
	}

	// Manager mapping refresh worker
	if err := c.Provide(func(refresher primary.ManagerRefresher, cfg *config.Config, logger *zap.Logger) *worker.Worker {
		return worker.NewWorker(refresher, cfg.ManagerRefreshInterval, logger)
	}); err != nil {
		return nil, err
	}

	return c, nil
}
