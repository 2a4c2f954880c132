package logging

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

type contextKey string

const loggerKey = contextKey("logger")

const DefaultLevel = "info"

var (
	defaultLogger     *logrus.Entry
	defaultLoggerOnce sync.Once
)

func DefaultLogger() *logrus.Entry {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger(os.Stderr, DefaultLevel)
	})
	return defaultLogger
}

// NewLogger returns a text logger tagged with the application name. An unknown level falls back to info
func NewLogger(w io.Writer, level string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		QuoteEmptyFields: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger.WithField("app", "verter")
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func FromContext(ctx context.Context) *logrus.Entry {
	if logger, ok := ctx.Value(loggerKey).(*logrus.Entry); ok {
		return logger
	}
	return DefaultLogger()
}
