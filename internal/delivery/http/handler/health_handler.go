package handler

import (
	"context"
	"time"

	"learnmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// HealthHandler reports dependency status. The service is healthy without the
// cache; only the database decides the status code.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthTimeout)
	defer cancel()

	out := healthResponse{Database: status(ctx, h.db), Cache: status(ctx, h.cache)}
	if out.Database != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", out)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func status(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
