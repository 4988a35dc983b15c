package handler

import (
	"errors"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/pkg/response"
	"learnmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// BadgeNotifier receives slugs awarded through the synchronous evaluate endpoint.
type BadgeNotifier interface {
	NotifyBadgesAwarded(learnerID uuid.UUID, slugs []string)
}

type BadgeHandler struct {
	uc       usecase.BadgesUsecase
	notifier BadgeNotifier
}

func NewBadgeHandler(uc usecase.BadgesUsecase, notifier BadgeNotifier) *BadgeHandler {
	return &BadgeHandler{uc: uc, notifier: notifier}
}

// RegisterRoutes mounts the catalog. Learner routes are mounted separately so the
// evaluate endpoint can carry its own rate limiter.
func (h *BadgeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/badges", h.ListCatalog)
}

func (h *BadgeHandler) RegisterLearnerRoutes(r fiber.Router, evaluateLimiter fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/me/badges", h.ListMine)
	if evaluateLimiter != nil {
		r.Post("/me/badges/evaluate", evaluateLimiter, h.Evaluate)
		return
	}
	r.Post("/me/badges/evaluate", h.Evaluate)
}

func (h *BadgeHandler) ListCatalog(c fiber.Ctx) error {
	items, err := h.uc.ListCatalog(c.Context())
	if err != nil {
		return mapBadgesUsecaseError(err)
	}

	out := make([]dto.BadgeResponse, 0, len(items))
	for _, b := range items {
		out = append(out, dto.BadgeResponse{ID: b.ID, Slug: b.Slug, Name: b.Name, Criteria: b.Criteria})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *BadgeHandler) ListMine(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListAwards(c.Context(), learnerID)
	if err != nil {
		return mapBadgesUsecaseError(err)
	}

	out := make([]dto.AwardResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.AwardResponse{BadgeID: a.BadgeID, Slug: a.Slug, Name: a.Name, AwardedAt: a.AwardedAt})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *BadgeHandler) Evaluate(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	awarded, err := h.uc.Evaluate(c.Context(), learnerID)
	if len(awarded) > 0 && h.notifier != nil {
		h.notifier.NotifyBadgesAwarded(learnerID, awarded)
	}
	if err != nil {
		return mapBadgesUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.EvaluateResponse{Awarded: awarded})
}

func mapBadgesUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrLearnerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Learner not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
