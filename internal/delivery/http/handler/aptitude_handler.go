package handler

import (
	"errors"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/pkg/response"
	"learnmatch/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type AptitudeHandler struct {
	uc       usecase.AptitudeUsecase
	validate *validator.Validate
}

func NewAptitudeHandler(uc usecase.AptitudeUsecase, v *validator.Validate) *AptitudeHandler {
	return &AptitudeHandler{uc: uc, validate: v}
}

func (h *AptitudeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me/aptitude", h.Get)
	r.Post("/me/aptitude", h.Create)
}

func (h *AptitudeHandler) Get(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), learnerID)
	if err != nil {
		return mapAptitudeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, aptitudeResponse(p))
}

func (h *AptitudeHandler) Create(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	var req dto.AptitudeRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	p, err := h.uc.Create(c.Context(), learnerID, usecase.AptitudeInput{
		SkillLevel:  req.SkillLevel,
		Interests:   parseIDs(req.Interests),
		CareerGoals: parseIDs(req.CareerGoals),
	})
	if err != nil {
		return mapAptitudeUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, aptitudeResponse(p))
}

func aptitudeResponse(p learner.AptitudeProfile) dto.AptitudeResponse {
	return dto.AptitudeResponse{
		ID:          p.ID,
		LearnerID:   p.LearnerID,
		SkillLevel:  string(p.SkillLevel),
		Interests:   p.Interests.Slice(),
		CareerGoals: p.CareerGoals.Slice(),
		CreatedAt:   p.CreatedAt,
	}
}

func mapAptitudeUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Aptitude profile not found", nil, err)
	case errors.Is(err, usecase.ErrProfileExists):
		return middleware.NewAppError(fiber.StatusConflict, "Aptitude profile already exists", nil, err)
	case errors.Is(err, usecase.ErrInvalidSkillLevel):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill level", nil, err)
	case errors.Is(err, usecase.ErrLearnerNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Learner not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
