package log

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressly/goose/v3"
)

type gooseLogger struct {
	logger *slog.Logger
}

var _ goose.Logger = (*gooseLogger)(nil)

// NewGooseLogger routes goose migration output through logger.
func NewGooseLogger(logger *slog.Logger) goose.Logger {
	return &gooseLogger{logger.With(slog.String("component", "migrations"))}
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	l.logger.Error(msg)
	panic(msg)
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
