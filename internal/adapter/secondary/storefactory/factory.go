package storefactory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/filestore"
	"github.com/ruudy-sib/demobridge/internal/adapter/secondary/redisstore"
	"github.com/ruudy-sib/demobridge/internal/config"
	"github.com/ruudy-sib/demobridge/internal/port/secondary"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Backend bundles the store chosen by configuration with its health check
// and a function releasing its resources.
type Backend struct {
	Store  secondary.KeyValueStore
	Health secondary.HealthChecker
	Close  func() error
}

// New builds the key-value store selected by cfg.StoreBackend.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	logger = logger.Named("store-factory")

	switch cfg.StoreBackend {
	case BackendFile, "":
		store, err := filestore.NewStore(cfg.StoreDir, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("using file store", zap.String("dir", cfg.StoreDir))
		return &Backend{
			Store:  store,
			Health: filestore.NewHealthCheck(cfg.StoreDir),
			Close:  func() error { return nil },
		}, nil

	case BackendRedis:
		client, err := redisstore.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("using redis store", zap.String("prefix", cfg.RedisKeyPrefix))
		return &Backend{
			Store:  redisstore.NewStore(client, cfg.RedisKeyPrefix, logger),
			Health: redisstore.NewHealthCheck(client),
			Close:  client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
