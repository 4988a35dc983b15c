package handler

import (
	"strings"

	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/delivery/http/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func bindAndValidate(c fiber.Ctx, v *validator.Validate, out any) error {
	if err := c.Bind().Body(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(out); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", validation.Fields(err), err)
	}
	return nil
}

func requireLearner(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.LearnerID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func parseIDs(raw []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

// skillNames trims entries and drops the blank ones.
func skillNames(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
