package routes

import (
	"learnmatch/internal/delivery/http/handler"
	v1 "learnmatch/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Deps
	ws     fiber.Handler
	wsAuth fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, deps v1.Deps, wsAuth, ws fiber.Handler) *Registry {
	return &Registry{health: health, v1: deps, ws: ws, wsAuth: wsAuth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws == nil || r.wsAuth == nil {
		return
	}
	app.Get("/ws/badges", r.wsAuth, r.ws)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
