package observe

import "go.uber.org/zap"

// zapSink adapts a zap logger to the Sink interface.
type zapSink struct {
	log *zap.Logger
}

// NewZapSink returns a Sink that writes events to a zap logger.
// Failure events log at warn level, everything else at debug.
func NewZapSink(log *zap.Logger) Sink {
	return &zapSink{log: log}
}

func (s *zapSink) Emit(e Event) {
	fields := make([]zap.Field, 0, len(e.Fields)+2)
	fields = append(fields, zap.String("document", e.Document))
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	for k, v := range e.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch e.Kind {
	case KindEditRejected, KindReparseFailed:
		s.log.Warn(string(e.Kind), fields...)
	default:
		s.log.Debug(string(e.Kind), fields...)
	}
}
