package middleware

import (
	"time"

	"learnmatch/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *zap.Logger
}

func NewAccessLogMiddleware(log *zap.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger.Component(log, "http")}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		fields := []zap.Field{
			zap.String("rid", rid),
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.Int("req_bytes", c.Request().Header.ContentLength()),
			zap.Int("resp_bytes", c.Response().Header.ContentLength()),
			zap.String("ua", c.Get("User-Agent")),
		}
		if id, ok := LearnerID(c); ok {
			fields = append(fields, zap.String(logger.FieldLearnerID, id.String()))
		}

		if m != nil && m.logger != nil {
			m.logger.Info("http access", fields...)
		}

		return err
	}
}
