package v1

import (
	"learnmatch/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the v1 handlers and the guards applied to their groups.
type Deps struct {
	Auth     *handler.AuthHandler
	Learner  *handler.LearnerHandler
	Aptitude *handler.AptitudeHandler
	Match    *handler.MatchHandler
	Badges   *handler.BadgeHandler
	Events   *handler.EventHandler

	RequireLearner  fiber.Handler
	RequireInternal fiber.Handler
	EvaluateLimiter fiber.Handler
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	if d.Auth != nil {
		d.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if d.Badges != nil {
		d.Badges.RegisterRoutes(r)
	}
	if d.Events != nil {
		d.Events.RegisterRoutes(r, d.RequireInternal)
	}

	if d.RequireLearner == nil {
		return
	}
	protected := r.Group("", d.RequireLearner)
	RegisterLearner(protected, d)
}
