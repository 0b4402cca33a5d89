package http

import (
	"time"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const principalKey = "principal"

// PrincipalMiddleware extracts the verified identity the external identity
// provider attaches upstream (user id and role claim headers). Requests
// without a principal proceed anonymously; handlers decide what that means.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal models.Principal
		if id, err := uuid.Parse(c.GetHeader("X-User-ID")); err == nil {
			principal.UserID = id
			principal.Role = models.Role(c.GetHeader("X-User-Role"))
			if principal.Role == "" {
				principal.Role = models.RoleUser
			}
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal returns the principal attached by PrincipalMiddleware
func GetPrincipal(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}

// LoggingMiddleware logs all HTTP requests with duration and status
func LoggingMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logEvent := logger.Info()
		if status >= 500 {
			logEvent = logger.Error()
		}

		logEvent.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("duration_ms", duration).
			Msg("http request completed")
	}
}

// TracingMiddleware adds OpenTelemetry tracing to HTTP requests
func TracingMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer("bet-engine")

	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), c.FullPath(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			),
		)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 500 {
			span.SetStatus(codes.Error, "internal error")
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
}

// RecoveryMiddleware converts panics into opaque 500 responses
func RecoveryMiddleware(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("path", c.FullPath()).
					Msg("panic recovered in handler")
				c.AbortWithStatusJSON(500, gin.H{"error": "internal error"})
			}
		}()
		c.Next()
	}
}
