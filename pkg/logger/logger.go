package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	WithComponent(name string) Logger
	Printf(format string, args ...any)
}

type Opts struct {
	Env       string
	SentryDSN string
	Release   string
}

type Impl struct {
	log *slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).With().Timestamp().Logger()
	} else {
		level = slog.LevelInfo
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
			Release:     opts.Release,
		})
		if err != nil {
			zl.Error().Err(err).Msg("Failed to init sentry, continuing without it")
		} else {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{log: slog.New(slogmulti.Fanout(handlers...))}
}

func (l *Impl) Debug(msg string, args ...any) { l.log.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.log.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.log.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.log.Error(msg, args...) }

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{log: l.log.With("component", name)}
}

// Printf lets the logger be used as an fx.Printer.
func (l *Impl) Printf(format string, args ...any) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

// Flush waits for buffered Sentry events.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// Nop returns a logger that drops everything, for tests.
func Nop() *Impl {
	return &Impl{log: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}
