// Package log reports wrap combinator events through zap.
package log

import (
	"os"

	"github.com/on-the-ground/funcwrap/wrap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Observer is a wrap.Observer writing one structured log entry per event.
// Failures are logged at warn level, everything else at debug level.
type Observer struct {
	logger *zap.Logger
}

var _ wrap.Observer = (*Observer)(nil)

// NewObserver returns an Observer writing to logger.
func NewObserver(logger *zap.Logger) *Observer {
	return &Observer{logger: logger}
}

// NewTestObserver returns an Observer writing human-readable debug logs to
// stdout.
func NewTestObserver() *Observer {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return NewObserver(zap.New(consoleCore))
}

func (o *Observer) On(eventData wrap.EventData) {
	fields := make([]zap.Field, 0, 6)
	fields = append(fields,
		zap.String("combinator", eventData.Combinator),
		zap.String("id", eventData.ID),
		zap.Stringer("event", eventData.Event),
	)
	if eventData.Key != "" {
		fields = append(fields, zap.String("key", eventData.Key))
	}
	if !eventData.Span.IsEmpty() {
		fields = append(fields, zap.Duration("took", eventData.Span.Duration()))
	}

	switch eventData.Event {
	case wrap.EventFailed:
		o.logger.Warn("wrapped call failed", append(fields, zap.Error(eventData.Err))...)
	default:
		o.logger.Debug("wrapped call", fields...)
	}
}

// Sync flushes the underlying logger.
func (o *Observer) Sync() {
	if err := o.logger.Sync(); err != nil {
		o.logger.Warn("failed to sync logger", zap.Error(err))
	}
}
