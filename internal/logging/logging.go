// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ruudy-sib/demobridge/internal/config"
)

// New returns a development logger with coloured levels for local and
// development environments and a production JSON logger otherwise. An
// unparsable LOG_LEVEL falls back to info.
func New(cfg *config.Config, name string) (*zap.Logger, error) {
	var zapCfg zap.Config

	if isDevelopment(cfg.Environment) {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(name), nil
}

func isDevelopment(env string) bool {
	return env == "local" || env == "development"
}
