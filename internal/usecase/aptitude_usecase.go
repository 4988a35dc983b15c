package usecase

import (
	"context"
	"errors"
	"strings"

	"learnmatch/internal/domain/learner"
	"learnmatch/internal/logger"
	"learnmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AptitudeInput struct {
	SkillLevel  string
	Interests   []uuid.UUID
	CareerGoals []uuid.UUID
}

type AptitudeUsecase interface {
	Get(ctx context.Context, learnerID uuid.UUID) (learner.AptitudeProfile, error)
	Create(ctx context.Context, learnerID uuid.UUID, in AptitudeInput) (learner.AptitudeProfile, error)
}

type Aptitude struct {
	learners learner.Repository
	profiles repository.AptitudeProfileRepository
	cache    MatchCache
	logger   *zap.Logger
}

func NewAptitudeUsecase(learners learner.Repository, profiles repository.AptitudeProfileRepository, cache MatchCache, log *zap.Logger) *Aptitude {
	return &Aptitude{
		learners: learners,
		profiles: profiles,
		cache:    cache,
		logger:   logger.Component(log, "aptitude"),
	}
}

func (u *Aptitude) Get(ctx context.Context, learnerID uuid.UUID) (learner.AptitudeProfile, error) {
	if learnerID == uuid.Nil {
		return learner.AptitudeProfile{}, ErrUnauthorized
	}
	p, err := u.profiles.FindByLearnerID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrProfileNotFound) {
			return learner.AptitudeProfile{}, ErrProfileNotFound
		}
		u.logger.Error("load aptitude profile", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return learner.AptitudeProfile{}, ErrInternal
	}
	return p, nil
}

// Create stores the questionnaire result. A learner has at most one profile.
func (u *Aptitude) Create(ctx context.Context, learnerID uuid.UUID, in AptitudeInput) (learner.AptitudeProfile, error) {
	if learnerID == uuid.Nil {
		return learner.AptitudeProfile{}, ErrUnauthorized
	}
	level, ok := ParseSkillLevel(in.SkillLevel)
	if !ok {
		return learner.AptitudeProfile{}, ErrInvalidSkillLevel
	}

	exists, err := u.learners.ExistsByID(ctx, learnerID)
	if err != nil {
		u.logger.Error("check learner", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return learner.AptitudeProfile{}, ErrInternal
	}
	if !exists {
		return learner.AptitudeProfile{}, ErrLearnerNotFound
	}

	created, err := u.profiles.Create(ctx, learner.AptitudeProfile{
		ID:          uuid.New(),
		LearnerID:   learnerID,
		SkillLevel:  level,
		Interests:   learner.NewIDSet(in.Interests...),
		CareerGoals: learner.NewIDSet(in.CareerGoals...),
	})
	if err != nil {
		if errors.Is(err, learner.ErrProfileExists) {
			return learner.AptitudeProfile{}, ErrProfileExists
		}
		u.logger.Error("create aptitude profile", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return learner.AptitudeProfile{}, ErrInternal
	}

	// Results computed while the learner had no profile are stale now.
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, MatchCachePattern(learnerID)); err != nil {
			u.logger.Warn("invalidate match cache", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		}
	}

	return created, nil
}

// ParseSkillLevel accepts the three questionnaire levels in any case.
func ParseSkillLevel(raw string) (learner.SkillLevel, bool) {
	level := learner.SkillLevel(strings.ToLower(strings.TrimSpace(raw)))
	switch level {
	case learner.SkillLevelBeginner, learner.SkillLevelIntermediate, learner.SkillLevelAdvanced:
		return level, true
	default:
		return "", false
	}
}
