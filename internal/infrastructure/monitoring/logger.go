// Package monitoring provides the observability implementations: zap-backed
// logging, Prometheus metrics and OpenTelemetry tracing.
package monitoring

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minervahq/minerva/internal/config"
	"github.com/minervahq/minerva/pkg/constants"
	"github.com/minervahq/minerva/pkg/logger"
)

// ZapLogger is the zap implementation of logger.Logger. Its level is atomic
// so config reloads can adjust verbosity on a running server.
type ZapLogger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// NewZapLogger creates a JSON-encoded zap logger.
func NewZapLogger(cfg *config.LogConfig) (*ZapLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	level := zap.NewAtomicLevelAt(parsed)

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)

	return &ZapLogger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)),
		level:  level,
	}, nil
}

// SetLevel changes the logging level at runtime. Loggers derived with
// WithFields share the level.
func (l *ZapLogger) SetLevel(levelStr string) error {
	parsed, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	l.level.SetLevel(parsed)
	return nil
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Debug(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Info(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Warn(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, err error, fields ...logger.Fields) {
	allFields := append(fields, logger.Fields{"error": err})
	l.Logger.Error(msg, l.convertFields(ctx, allFields...)...)
}

func (l *ZapLogger) Fatal(ctx context.Context, msg string, err error, fields ...logger.Fields) {
	allFields := append(fields, logger.Fields{"error": err})
	l.Logger.Fatal(msg, l.convertFields(ctx, allFields...)...)
}

func (l *ZapLogger) WithFields(fields logger.Fields) logger.Logger {
	return &ZapLogger{
		Logger: l.Logger.With(l.convertFields(context.Background(), fields)...),
		level:  l.level,
	}
}

func (l *ZapLogger) convertFields(ctx context.Context, fields ...logger.Fields) []zap.Field {
	zapFields := make([]zap.Field, 0)
	if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok {
		zapFields = append(zapFields, zap.String("request_id", requestID))
	}
	if traceID, ok := ctx.Value(constants.ContextKeyTraceID).(string); ok {
		zapFields = append(zapFields, zap.String("trace_id", traceID))
	}

	for _, f := range fields {
		for k, v := range f {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}
	return zapFields
}
