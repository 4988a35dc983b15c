package dto

import "time"

type EventRequest struct {
	Kind       string     `json:"kind" validate:"required,event_kind"`
	LearnerID  string     `json:"learner_id" validate:"required,uuid"`
	OccurredAt *time.Time `json:"occurred_at"`
}
