package main

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/bookingclient"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/storefactory"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/domain/service"
	"github.com/ruudy-sib/demobridge/internal/logging"
	"github.com/ruudy-sib/demobridge/internal/port/primary"
)

func buildContainer(ctx context.Context, opts options) (*dig.Container, error) {
	c := dig.New()

	// --- Configuration ---
	if err := c.Provide(func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if opts.callbackURL != "" {
			cfg.WebhookCallbackURL = opts.callbackURL
		}
		return cfg, cfg.ValidateBootstrap()
	}); err != nil {
		return nil, err
	}

	// --- Logger ---
	if err := c.Provide(func(cfg *config.Config) (*zap.Logger, error) {
		return logging.New(cfg, appName)
	}); err != nil {
		return nil, err
	}

	// --- Secondary Adapters ---
	if err := c.Provide(func(cfg *config.Config, logger *zap.Logger) (*storefactory.Backend, error) {
		return storefactory.New(ctx, cfg, logger)
	}); err != nil {
		return nil, err
	}

	if err := c.Provide(bookingclient.NewClient); err != nil {
		return nil, err
	}

	// --- Domain Services ---
	if err := c.Provide(func(
		booking *bookingclient.Client,
		backend *storefactory.Backend,
		cfg *config.Config,
		logger *zap.Logger,
	) primary.SubscriptionService {
		return service.NewSubscriptionService(booking, backend.Store, service.SubscriptionSettings{
			CallbackURL: cfg.WebhookCallbackURL,
			Events:      opts.events,
		}, logger)
	}); err != nil {
		return nil, err
	}

	return c, nil
}
