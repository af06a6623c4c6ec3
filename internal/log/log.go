// Package log provides centralized logging using zap, with optional
// size-based rotation of a log file via lumberjack.
package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.SugaredLogger

// Options controls logger construction.
type Options struct {
	Debug bool
	// File, when set, also writes JSON logs to a rotating file alongside
	// the console output.
	File string
}

// Init initializes the package-level logger.
func Init(opts Options) error {
	logger, err := New(opts)
	if err != nil {
		return err
	}
	log = logger.Sugar()
	return nil
}

// New builds a zap logger from Options without touching package state.
// Callers that want dependency-injected logging use this directly.
func New(opts Options) (*zap.Logger, error) {
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// GetSugaredLogger returns the sugared logger, initializing a production
// fallback if Init was never called.
func GetSugaredLogger() *zap.SugaredLogger {
	if log == nil {
		fallback, err := zap.NewProduction()
		if err != nil {
			panic(fmt.Sprintf("can't initialize fallback zap logger: %v", err))
		}
		log = fallback.Sugar()
	}
	return log
}

// Sync flushes any buffered log entries.
func Sync() {
	if log != nil {
		log.Sync()
	}
}

func Debugf(template string, args ...interface{}) { GetSugaredLogger().Debugf(template, args...) }
func Infof(template string, args ...interface{})  { GetSugaredLogger().Infof(template, args...) }
func Warnf(template string, args ...interface{})  { GetSugaredLogger().Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { GetSugaredLogger().Errorf(template, args...) }
