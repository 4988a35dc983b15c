package learner

import (
	"context"
	"errors"

	"learnmatch/internal/domain/learner"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("learner not found")
	ErrInternal = errors.New("internal error")
)

type Service struct {
	learners learner.Repository
}

func NewService(learners learner.Repository) *Service {
	return &Service{learners: learners}
}

func (s *Service) GetMe(ctx context.Context, learnerID uuid.UUID) (learner.Learner, error) {
	l, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrNotFound) {
			return learner.Learner{}, ErrNotFound
		}
		return learner.Learner{}, ErrInternal
	}
	return sanitize(l), nil
}

func sanitize(l learner.Learner) learner.Learner {
	l.PasswordHash = ""
	return l
}
