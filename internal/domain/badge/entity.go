package badge

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("badge not found")

const (
	SlugQuickLearner  = "quick-learner"
	SlugConsistent    = "consistent"
	SlugQuizMaster    = "quiz-master"
	SlugSocialLearner = "social-learner"
	SlugMarathon      = "marathon"
)

// Badge is a catalog entry. Criteria is informational only; evaluation is coded
// per slug in Rules.
type Badge struct {
	ID        uuid.UUID
	Slug      string
	Name      string
	Criteria  string
	CreatedAt time.Time
}

// Award records that a learner holds a badge. (LearnerID, BadgeID) is unique.
type Award struct {
	LearnerID uuid.UUID
	BadgeID   uuid.UUID
	Slug      string
	Name      string
	AwardedAt time.Time
}
