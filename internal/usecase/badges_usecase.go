package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnmatch/internal/domain/badge"
	"learnmatch/internal/domain/event"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/logger"
	"learnmatch/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BadgesUsecase interface {
	Evaluate(ctx context.Context, learnerID uuid.UUID) ([]string, error)
	HandleEvent(ctx context.Context, evt event.Event) ([]string, error)
	ListCatalog(ctx context.Context) ([]badge.Badge, error)
	ListAwards(ctx context.Context, learnerID uuid.UUID) ([]badge.Award, error)
}

type Badges struct {
	learners learner.Repository
	activity repository.ActivityRepository
	badges   repository.BadgeRepository
	loc      *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

func NewBadgesUsecase(learners learner.Repository, activity repository.ActivityRepository, badges repository.BadgeRepository, loc *time.Location, log *zap.Logger) *Badges {
	if loc == nil {
		loc = time.Local
	}
	return &Badges{
		learners: learners,
		activity: activity,
		badges:   badges,
		loc:      loc,
		now:      time.Now,
		logger:   logger.Component(log, "badges"),
	}
}

// Evaluate checks every badge rule against the learner's current activity and
// awards the ones that hold. It returns only the slugs awarded by this call; badges
// the learner already held are not repeated.
func (u *Badges) Evaluate(ctx context.Context, learnerID uuid.UUID) ([]string, error) {
	if learnerID == uuid.Nil {
		return nil, ErrLearnerNotFound
	}

	exists, err := u.learners.ExistsByID(ctx, learnerID)
	if err != nil {
		u.logger.Error("check learner", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrLearnerNotFound
	}

	snapshot := u.snapshot(ctx, learnerID)
	log := u.logger.With(zap.String(logger.FieldLearnerID, learnerID.String()))

	awarded := make([]string, 0)
	var errs []error
	for _, slug := range badge.Qualifying(snapshot) {
		b, err := u.badges.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, badge.ErrNotFound) {
				log.Debug("badge not in catalog, skipping", zap.String(logger.FieldBadgeSlug, slug))
				continue
			}
			log.Error("find badge", zap.String(logger.FieldBadgeSlug, slug), zap.Error(err))
			errs = append(errs, fmt.Errorf("find badge %s: %w", slug, err))
			continue
		}

		created, err := u.badges.UpsertAward(ctx, learnerID, b.ID)
		if err != nil {
			log.Error("award badge", zap.String(logger.FieldBadgeSlug, slug), zap.Error(err))
			errs = append(errs, fmt.Errorf("award badge %s: %w", slug, err))
			continue
		}
		if created {
			log.Info("badge awarded", zap.String(logger.FieldBadgeSlug, slug))
			awarded = append(awarded, slug)
		}
	}

	if len(errs) > 0 {
		return awarded, errors.Join(errs...)
	}
	return awarded, nil
}

// HandleEvent runs a full evaluation for the event's learner. Any event kind may
// unlock any badge, so the kind only serves as a trigger.
func (u *Badges) HandleEvent(ctx context.Context, evt event.Event) ([]string, error) {
	if err := evt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	u.logger.Debug("evaluating after event",
		zap.String(logger.FieldEventKind, string(evt.Kind)),
		zap.String(logger.FieldLearnerID, evt.LearnerID.String()),
	)
	return u.Evaluate(ctx, evt.LearnerID)
}

func (u *Badges) ListCatalog(ctx context.Context) ([]badge.Badge, error) {
	items, err := u.badges.ListCatalog(ctx)
	if err != nil {
		u.logger.Error("list badge catalog", zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Badges) ListAwards(ctx context.Context, learnerID uuid.UUID) ([]badge.Award, error) {
	if learnerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.badges.ListAwardsByLearner(ctx, learnerID)
	if err != nil {
		u.logger.Error("list awards", zap.String(logger.FieldLearnerID, learnerID.String()), zap.Error(err))
		return nil, ErrInternal
	}
	return items, nil
}

// snapshot gathers the rule inputs. A failed read is logged and treated as "no
// records" so one unavailable source cannot block the other badges.
func (u *Badges) snapshot(ctx context.Context, learnerID uuid.UUID) badge.Activity {
	log := u.logger.With(zap.String(logger.FieldLearnerID, learnerID.String()))
	var a badge.Activity

	start := startOfDay(u.now(), u.loc)
	n, err := u.activity.CountLessonsCompletedBetween(ctx, learnerID, start, start.AddDate(0, 0, 1))
	if err != nil {
		log.Warn("count lessons completed today", zap.Error(err))
	} else {
		a.LessonsCompletedToday = n
	}

	dates, err := u.activity.RecentCompletionDates(ctx, learnerID, u.loc, badge.ConsistentStreakDays)
	if err != nil {
		log.Warn("load recent completion dates", zap.Error(err))
	} else {
		a.RecentCompletionDates = dates
	}

	n, err = u.activity.CountPerfectQuizAttempts(ctx, learnerID, badge.PerfectQuizScore)
	if err != nil {
		log.Warn("count perfect quiz attempts", zap.Error(err))
	} else {
		a.PerfectQuizAttempts = n
	}

	n, err = u.activity.CountCertificateShares(ctx, learnerID)
	if err != nil {
		log.Warn("count certificate shares", zap.Error(err))
	} else {
		a.CertificateShares = n
	}

	ok, err := u.activity.HasCompletedCourseWithMinDuration(ctx, learnerID, badge.MarathonMinDurationMinutes)
	if err != nil {
		log.Warn("check marathon course", zap.Error(err))
	} else {
		a.HasMarathonCourse = ok
	}

	return a
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
