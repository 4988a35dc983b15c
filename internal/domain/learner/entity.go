package learner

import (
	"time"

	"github.com/google/uuid"
)

type Learner struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
)

// AptitudeProfile is the learner's onboarding questionnaire result. It is created
// once and read-only afterwards.
type AptitudeProfile struct {
	ID          uuid.UUID
	LearnerID   uuid.UUID
	SkillLevel  SkillLevel
	Interests   IDSet
	CareerGoals IDSet
	CreatedAt   time.Time
}
