package logger

import "log/slog"

// Interface is the structured logger injected into use cases, repositories
// and handlers. Arguments are alternating key/value pairs.
type Interface interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
	With(keysAndValues ...any) Interface
}

type slogLogger struct {
	logger *slog.Logger
}

func NewLogger() Interface {
	return &slogLogger{logger: Get()}
}

func NewLoggerWithSlog(l *slog.Logger) Interface {
	return &slogLogger{logger: l}
}

func (l *slogLogger) Debugw(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogLogger) Infow(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogLogger) Warnw(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogLogger) Errorw(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogLogger) With(keysAndValues ...any) Interface {
	return &slogLogger{logger: l.logger.With(keysAndValues...)}
}

// NewNop returns a logger that discards everything.
func NewNop() Interface {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...any)   {}
func (nopLogger) Infow(string, ...any)    {}
func (nopLogger) Warnw(string, ...any)    {}
func (nopLogger) Errorw(string, ...any)   {}
func (n nopLogger) With(...any) Interface { return n }
