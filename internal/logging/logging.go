// Package logging configures the process-wide zap logger. Components obtain
// named sugared loggers through L; before Init runs every logger is a no-op,
// so early code paths never need a nil check.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls console and file output. The console core stays quiet by
// default so it does not fight the status line; the file core, when enabled,
// records a JSON log for scheduled runs and rotates itself.
type Options struct {
	Level   string // debug, info, warn, error (console); default warn
	File    string // optional JSON log file path, rotated
	NoColor bool
}

var (
	mu     sync.RWMutex
	global = zap.NewNop().Sugar()
)

// Init builds the global logger. Call once after configuration is loaded.
func Init(opts Options) {
	lvl := ParseLevel(opts.Level)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if opts.NoColor {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), lvl),
	}

	if opts.File != "" {
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileCfg),
			zapcore.AddSync(rotated),
			zapcore.DebugLevel,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	mu.Lock()
	global = logger.Sugar()
	mu.Unlock()
}

// L returns a logger tagged with the given component name.
func L(component string) *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global.Named(component)
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = global.Sync()
}

// ParseLevel maps a config string onto a zap level, defaulting to warn so an
// interactive run only surfaces problems.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	case "warn", "warning", "":
		return zapcore.WarnLevel
	default:
		return zapcore.WarnLevel
	}
}
