// Package logger wraps log/slog with the handler setup used across the
// service: readable text output for local runs, JSON everywhere else.
package logger

import (
	"log/slog"
	"os"
)

// Environment names accepted by New. Anything unrecognized gets the
// production setup.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Log is the logging surface injected into services and controllers.
// Fatal and FatalErr terminate the process.
type Log interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	ErrorErr(msg string, err error, args ...any)
	Fatal(msg string, args ...any)
	FatalErr(msg string, err error, args ...any)
}

type Logger struct {
	l *slog.Logger
}

func New(env string) *Logger {
	return &Logger{l: slog.New(handlerFor(env))}
}

func handlerFor(env string) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch env {
	case envLocal:
		opts.Level = slog.LevelDebug
		return slog.NewTextHandler(os.Stdout, opts)
	case envDev:
		opts.Level = slog.LevelDebug
	case envProd:
	}
	return slog.NewJSONHandler(os.Stdout, opts)
}

func (lg *Logger) Debug(msg string, args ...any) {
	lg.l.Debug(msg, args...)
}

func (lg *Logger) Info(msg string, args ...any) {
	lg.l.Info(msg, args...)
}

func (lg *Logger) Warn(msg string, args ...any) {
	lg.l.Warn(msg, args...)
}

func (lg *Logger) Error(msg string, args ...any) {
	lg.l.Error(msg, args...)
}

// ErrorErr logs msg at error level with the error attached as an attr.
func (lg *Logger) ErrorErr(msg string, err error, args ...any) {
	lg.l.Error(msg, append(args, Err(err))...)
}

func (lg *Logger) Fatal(msg string, args ...any) {
	lg.l.Error(msg, append(args, slog.Bool("fatal", true))...)
	os.Exit(1)
}

func (lg *Logger) FatalErr(msg string, err error, args ...any) {
	lg.l.Error(msg, append(args, Err(err), slog.Bool("fatal", true))...)
	os.Exit(1)
}

// Err turns an error into a slog attr under the "error" key.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}
