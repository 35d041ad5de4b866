package http

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

var _ resty.Logger = (*restyLogger)(nil)

// restyLogger adapts slog to the printf-style logger resty expects.
type restyLogger struct {
	logger *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(message(format, v...), "component", "resty")
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(message(format, v...), "component", "resty")
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(message(format, v...), "component", "resty")
}

func message(format string, v ...any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
