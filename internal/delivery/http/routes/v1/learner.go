package v1

import "github.com/gofiber/fiber/v3"

func RegisterLearner(r fiber.Router, d Deps) {
	if r == nil {
		return
	}
	if d.Learner != nil {
		d.Learner.RegisterRoutes(r)
	}
	if d.Aptitude != nil {
		d.Aptitude.RegisterRoutes(r)
	}
	if d.Match != nil {
		d.Match.RegisterRoutes(r)
	}
	if d.Badges != nil {
		d.Badges.RegisterLearnerRoutes(r, d.EvaluateLimiter)
	}
}
