package handlers

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/minervahq/minerva/internal/application/dto"
	"github.com/minervahq/minerva/internal/infrastructure/ratelimit"
	"github.com/minervahq/minerva/pkg/constants"
	"github.com/minervahq/minerva/pkg/errors"
	"github.com/minervahq/minerva/pkg/logger"
)

// RequestIDMiddleware assigns every request an identifier, exposed in logs
// and the X-Request-ID response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggingMiddleware logs completed requests.
func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		log.Info(c.Request.Context(), "request processed", logger.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": latency.Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
	}
}

// RecoveryMiddleware recovers from handler panics.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error(c.Request.Context(), "panic recovered",
					goerrors.New("panic"), logger.Fields{"panic": r})
				dto.SendError(c, errors.ErrInternalServer)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// TracingMiddleware starts a server span per request and exposes the trace
// id to handlers and the response envelope.
func TracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer(constants.ServiceName)
	propagator := propagation.TraceContext{}
	return func(c *gin.Context) {
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		ctx, span := tracer.Start(
			ctx,
			"HTTP "+c.Request.Method+" "+c.FullPath(),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.target", c.Request.URL.Path),
			),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			c.Set("trace_id", traceID)
			ctx = context.WithValue(ctx, constants.ContextKeyTraceID, traceID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(attribute.Int("http.status_code", c.Writer.Status()))
	}
}

// RateLimitMiddleware applies per-client-IP rate limiting.
func RateLimitMiddleware(limiter ratelimit.Limiter, metrics MetricsRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			dto.SendError(c, errors.ErrInternalServer.WithError(err))
			c.Abort()
			return
		}
		if !allowed {
			metrics.RecordRateLimitHit()
			dto.SendError(c, errors.ErrRateLimitExceeded)
			c.Abort()
			return
		}
		c.Next()
	}
}
