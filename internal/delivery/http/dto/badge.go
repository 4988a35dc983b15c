package dto

import (
	"time"

	"github.com/google/uuid"
)

type BadgeResponse struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Criteria string    `json:"criteria"`
}

type AwardResponse struct {
	BadgeID   uuid.UUID `json:"badge_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	AwardedAt time.Time `json:"awarded_at"`
}

type EvaluateResponse struct {
	Awarded []string `json:"awarded"`
}
