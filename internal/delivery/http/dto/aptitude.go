package dto

import (
	"time"

	"github.com/google/uuid"
)

type AptitudeRequest struct {
	SkillLevel  string   `json:"skill_level" validate:"required,skill_level"`
	Interests   []string `json:"interests" validate:"omitempty,dive,uuid"`
	CareerGoals []string `json:"career_goals" validate:"omitempty,dive,uuid"`
}

type AptitudeResponse struct {
	ID          uuid.UUID   `json:"id"`
	LearnerID   uuid.UUID   `json:"learner_id"`
	SkillLevel  string      `json:"skill_level"`
	Interests   []uuid.UUID `json:"interests"`
	CareerGoals []uuid.UUID `json:"career_goals"`
	CreatedAt   time.Time   `json:"created_at"`
}
