package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. json selects the production encoder,
// otherwise a human friendly console encoder is used.
func New(level string, json bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	if json {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.DisableStacktrace = true

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// MustSetGlobal replaces zap's global logger and returns a function restoring it.
func MustSetGlobal(level string, json bool) func() {
	logger, err := New(level, json)
	if err != nil {
		panic(err)
	}
	return zap.ReplaceGlobals(logger)
}
