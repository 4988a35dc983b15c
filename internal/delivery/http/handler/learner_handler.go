package handler

import (
	"context"
	"errors"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/pkg/response"
	learneruc "learnmatch/internal/usecase/learner"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type LearnerService interface {
	GetMe(ctx context.Context, learnerID uuid.UUID) (learner.Learner, error)
}

type LearnerHandler struct {
	svc LearnerService
}

func NewLearnerHandler(svc LearnerService) *LearnerHandler {
	return &LearnerHandler{svc: svc}
}

func (h *LearnerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.GetMe)
}

func (h *LearnerHandler) GetMe(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	l, err := h.svc.GetMe(c.Context(), learnerID)
	if err != nil {
		if errors.Is(err, learneruc.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Learner not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.LearnerResponse{
		ID:        l.ID,
		Email:     l.Email,
		CreatedAt: l.CreatedAt,
	})
}
