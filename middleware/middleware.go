package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppMiddleware holds the dependencies shared by the request middlewares.
type AppMiddleware struct {
	Logger *zap.Logger
}

func NewAppMiddleware(logger *zap.Logger) *AppMiddleware {
	return &AppMiddleware{Logger: logger}
}

// LogIncomingRequest tags every request with a request id and writes an
// access log line.
func (m *AppMiddleware) LogIncomingRequest(ctx *fiber.Ctx) error {
	requestID := uuid.NewString()
	ctx.Locals("requestID", requestID)
	ctx.Set("X-Request-Id", requestID)
	m.Logger.Info("incoming request",
		zap.String("request_id", requestID),
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
	)
	return ctx.Next()
}

// NoStore disables intermediary and browser caching. Prices and availability
// go stale fast, so every API answer is fetched fresh.
func NoStore(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	ctx.Set("Pragma", "no-cache")
	return ctx.Next()
}
