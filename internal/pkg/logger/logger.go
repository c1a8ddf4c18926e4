// Package logger builds the process-wide zap logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger for env "production" and a colored
// console logger otherwise.
func New(env string) (*zap.Logger, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}

// Sync flushes buffered entries. Errors from syncing stdout are ignored.
func Sync(log *zap.Logger) {
	if log != nil {
		_ = log.Sync()
	}
}

// Run calls fn and returns the process exit code for its result. A failure is
// logged at error level under msg. The logger is flushed before Run returns,
// so the caller can pass the code straight to os.Exit.
func Run(log *zap.Logger, msg string, fn func() error) int {
	defer Sync(log)

	if err := fn(); err != nil {
		log.Error(msg, zap.Error(err))
		return 1
	}
	return 0
}
