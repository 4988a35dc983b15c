package handler

import (
	"errors"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/domain/job"
	"learnmatch/internal/domain/matching"
	"learnmatch/internal/pkg/response"
	"learnmatch/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc       usecase.MatchingUsecase
	validate *validator.Validate
}

func NewMatchHandler(uc usecase.MatchingUsecase, v *validator.Validate) *MatchHandler {
	return &MatchHandler{uc: uc, validate: v}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs/:job_id/match", h.GetMatch)
	r.Post("/match/preview", h.Preview)
}

func (h *MatchHandler) GetMatch(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	res, err := h.uc.ComputeMatchForJob(c.Context(), learnerID, jobID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponse(res))
}

// Preview scores a posting supplied in the body without loading it from storage.
func (h *MatchHandler) Preview(c fiber.Ctx) error {
	learnerID, err := requireLearner(c)
	if err != nil {
		return err
	}

	var req dto.MatchPreviewRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	posting := job.Posting{RequiredSkills: skillNames(req.RequiredSkills)}
	if req.CategoryID != "" {
		posting.CategoryID = uuid.MustParse(req.CategoryID)
	}
	if req.JobTypeID != "" {
		posting.JobTypeID = uuid.MustParse(req.JobTypeID)
	}

	res, err := h.uc.ComputeMatch(c.Context(), posting, learnerID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponse(res))
}

func matchResponse(res matching.Result) dto.MatchResponse {
	return dto.MatchResponse{
		Label: string(res.Label),
		Value: res.Value,
		Breakdown: dto.MatchBreakdownResponse{
			Skill:    res.Breakdown.SkillScore,
			Interest: res.Breakdown.InterestScore,
			Goal:     res.Breakdown.GoalScore,
		},
	}
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
