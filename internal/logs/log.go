// Package logs wraps a process-wide zap logger with a colored console core
// and an optional rotated JSON file core.
package logs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Garsondee/slime-rts/internal/config"
)

var logger = zap.NewNop()

// Options tweak Init beyond what the config file carries.
type Options struct {
	// Quiet drops the console core; used when stderr belongs to a terminal UI.
	Quiet bool
}

// Init replaces the global logger. Unknown levels fall back to info. The log
// file's directory is created up front; if that fails the previous logger is
// kept and the error returned.
func Init(appName string, cfg config.LogConfig, opts Options) error {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleCfg)

	fileCfg := encoderCfg
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(fileCfg)

	var fileWriter io.Writer = io.Discard
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("log dir for %s: %w", cfg.File, err)
		}
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
	}

	// Keep ANSI colours out of the file by giving each sink its own encoder.
	var cores []zapcore.Core
	if !opts.Quiet {
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), atomicLevel))
	}
	if cfg.File != "" {
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(fileWriter), atomicLevel))
	}

	zopts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}
	if cfg.Dev {
		zopts = append(zopts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	l := zap.New(zapcore.NewTee(cores...), zopts...).Named(appName)
	_ = logger.Sync()
	logger = l
	return nil
}

// L returns the global logger for callers that want a child logger.
func L() *zap.Logger { return logger.WithOptions(zap.AddCallerSkip(-1)) }

func Debug(msg string, fields ...zap.Field) { logger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { logger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { logger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { logger.Error(msg, fields...) }

// Fatal logs and exits the process.
func Fatal(msg string, fields ...zap.Field) { logger.Fatal(msg, fields...) }

// Sync flushes buffered entries; call before exit.
func Sync() error { return logger.Sync() }
