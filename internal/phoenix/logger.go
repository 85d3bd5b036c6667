package phoenix

import (
	"fmt"

	"github.com/nshafer/phx"
	"go.uber.org/zap"
)

// ZapLogger implements phx.Logger on top of zap. Warnings and errors keep
// their level; everything chattier is logged at debug.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a phx.Logger writing to logger.
func NewZapLogger(logger *zap.Logger) phx.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger{logger: logger.Named("phx")}
}

// Print implements phx.Logger
func (l *ZapLogger) Print(level phx.LoggerLevel, kind string, v ...any) {
	l.log(level, kind, fmt.Sprint(v...))
}

// Println implements phx.Logger
func (l *ZapLogger) Println(level phx.LoggerLevel, kind string, v ...any) {
	l.log(level, kind, fmt.Sprint(v...))
}

// Printf implements phx.Logger
func (l *ZapLogger) Printf(level phx.LoggerLevel, kind string, format string, v ...any) {
	l.log(level, kind, fmt.Sprintf(format, v...))
}

func (l *ZapLogger) log(level phx.LoggerLevel, kind, msg string) {
	if level >= phx.LoggerLevel(phx.LogWarning) {
		l.logger.Warn(msg, zap.String("kind", kind))
		return
	}
	l.logger.Debug(msg, zap.String("kind", kind))
}
