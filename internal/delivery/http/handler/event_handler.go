package handler

import (
	"context"
	"errors"
	"time"

	"learnmatch/internal/delivery/http/dto"
	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/domain/event"
	"learnmatch/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const publishTimeout = 2 * time.Second

type EventPublisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// EventHandler accepts learner activity from other services and queues it for
// badge evaluation.
type EventHandler struct {
	publisher EventPublisher
	validate  *validator.Validate
}

func NewEventHandler(publisher EventPublisher, v *validator.Validate) *EventHandler {
	return &EventHandler{publisher: publisher, validate: v}
}

func (h *EventHandler) RegisterRoutes(r fiber.Router, guard fiber.Handler) {
	if r == nil || guard == nil {
		return
	}
	r.Post("/events", guard, h.Publish)
}

func (h *EventHandler) Publish(c fiber.Ctx) error {
	var req dto.EventRequest
	if err := bindAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	kind, err := event.ParseKind(req.Kind)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown event kind", nil, err)
	}
	learnerID, err := uuid.Parse(req.LearnerID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid learner id", nil, err)
	}
	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = req.OccurredAt.UTC()
	}

	evt, err := event.New(kind, learnerID, occurredAt)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid event", nil, err)
	}

	ctx, cancel := context.WithTimeout(c.Context(), publishTimeout)
	defer cancel()
	if err := h.publisher.Publish(ctx, evt); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return middleware.NewAppError(fiber.StatusServiceUnavailable, "Event queue full", nil, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid event", nil, err)
	}

	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, nil)
}
