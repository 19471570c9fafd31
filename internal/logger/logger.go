// Package logger builds the zap loggers shared by the tablestitch packages.
package logger

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv switches the root logger to debug level when it parses as true.
const DebugEnv = "TABLESTITCH_DEBUG"

var (
	rootOnce   sync.Once
	rootLogger *zap.Logger
)

func root() *zap.Logger {
	rootOnce.Do(func() {
		level := zapcore.InfoLevel
		if enabled, _ := strconv.ParseBool(os.Getenv(DebugEnv)); enabled {
			level = zapcore.DebugLevel
		}

		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.DisableStacktrace = true

		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		rootLogger = l
	})
	return rootLogger
}

// GetLogger returns a logger named after module for easier filtering
func GetLogger(module string) *zap.Logger {
	return root().Named(module)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Sync flushes the root logger. Call it before the process exits.
func Sync() {
	if rootLogger != nil {
		_ = rootLogger.Sync()
	}
}
