package usecase

import (
	"context"
	"errors"
	"time"

	"learnmatch/internal/domain/job"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/domain/matching"
	"learnmatch/internal/logger"
	"learnmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchingUsecase interface {
	ComputeMatch(ctx context.Context, posting job.Posting, learnerID uuid.UUID) (matching.Result, error)
	ComputeMatchForJob(ctx context.Context, learnerID, jobID uuid.UUID) (matching.Result, error)
}

type Matching struct {
	profiles repository.AptitudeProfileRepository
	jobs     repository.JobPostingRepository
	cache    MatchCache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewMatchingUsecase(profiles repository.AptitudeProfileRepository, jobs repository.JobPostingRepository, cache MatchCache, ttl time.Duration, log *zap.Logger) *Matching {
	return &Matching{
		profiles: profiles,
		jobs:     jobs,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.Component(log, "matching"),
	}
}

// ComputeMatch scores the learner's aptitude profile against posting. A learner
// without a profile gets the fixed "Not a Fit" result.
func (u *Matching) ComputeMatch(ctx context.Context, posting job.Posting, learnerID uuid.UUID) (matching.Result, error) {
	if learnerID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}

	key := MatchCacheKey(learnerID, posting)
	if u.cache != nil {
		var cached matching.Result
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Warn("match cache read failed", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	p, err := u.profiles.FindByLearnerID(ctx, learnerID)
	if err != nil {
		if errors.Is(err, learner.ErrProfileNotFound) {
			return matching.NoProfile(), nil
		}
		u.logger.Error("load aptitude profile", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return matching.Result{}, ErrInternal
	}

	res := matching.Score(&p, posting)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, res, u.ttl); err != nil {
			u.logger.Warn("match cache write failed", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		}
	}
	return res, nil
}

func (u *Matching) ComputeMatchForJob(ctx context.Context, learnerID, jobID uuid.UUID) (matching.Result, error) {
	if learnerID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}
	if jobID == uuid.Nil {
		return matching.Result{}, ErrJobNotFound
	}

	posting, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return matching.Result{}, ErrJobNotFound
		}
		u.logger.Error("load job posting", zap.String(logger.FieldJobID, jobID.String()), zap.Error(err))
		return matching.Result{}, ErrInternal
	}

	return u.ComputeMatch(ctx, posting, learnerID)
}
