package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"learnmatch/internal/domain/badge"
	"learnmatch/internal/domain/job"
	"learnmatch/internal/domain/learner"

	"github.com/google/uuid"
)

type fakeLearners struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]learner.Learner
	err   error
	calls int
}

func newFakeLearners(ids ...uuid.UUID) *fakeLearners {
	f := &fakeLearners{byID: map[uuid.UUID]learner.Learner{}}
	for _, id := range ids {
		f.byID[id] = learner.Learner{ID: id, Email: id.String() + "@example.com"}
	}
	return f
}

func (f *fakeLearners) Create(_ context.Context, l learner.Learner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	l.CreatedAt = time.Now().UTC()
	f.byID[l.ID] = l
	return nil
}

func (f *fakeLearners) GetByID(_ context.Context, id uuid.UUID) (learner.Learner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return learner.Learner{}, f.err
	}
	l, ok := f.byID[id]
	if !ok {
		return learner.Learner{}, learner.ErrNotFound
	}
	return l, nil
}

func (f *fakeLearners) GetByEmail(_ context.Context, email string) (learner.Learner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return learner.Learner{}, f.err
	}
	for _, l := range f.byID {
		if l.Email == email {
			return l, nil
		}
	}
	return learner.Learner{}, learner.ErrNotFound
}

func (f *fakeLearners) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeLearners) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == learner.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

type fakeProfiles struct {
	mu        sync.Mutex
	byLearner map[uuid.UUID]learner.AptitudeProfile
	err       error
	reads     int
}

func newFakeProfiles(profiles ...learner.AptitudeProfile) *fakeProfiles {
	f := &fakeProfiles{byLearner: map[uuid.UUID]learner.AptitudeProfile{}}
	for _, p := range profiles {
		f.byLearner[p.LearnerID] = p
	}
	return f
}

func (f *fakeProfiles) FindByLearnerID(_ context.Context, id uuid.UUID) (learner.AptitudeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.err != nil {
		return learner.AptitudeProfile{}, f.err
	}
	p, ok := f.byLearner[id]
	if !ok {
		return learner.AptitudeProfile{}, learner.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfiles) Create(_ context.Context, p learner.AptitudeProfile) (learner.AptitudeProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return learner.AptitudeProfile{}, f.err
	}
	if _, ok := f.byLearner[p.LearnerID]; ok {
		return learner.AptitudeProfile{}, learner.ErrProfileExists
	}
	p.CreatedAt = time.Now().UTC()
	f.byLearner[p.LearnerID] = p
	return p, nil
}

type fakeJobs struct {
	byID map[uuid.UUID]job.Posting
	err  error
}

func (f fakeJobs) FindByID(_ context.Context, id uuid.UUID) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return job.Posting{}, job.ErrNotFound
	}
	return p, nil
}

type fakeActivity struct {
	lessonsToday   int
	dates          []time.Time
	perfectQuizzes int
	shares         int
	marathon       bool

	lessonsErr error
	datesErr   error
	quizErr    error
	sharesErr  error
	courseErr  error

	mu             sync.Mutex
	gotFrom, gotTo time.Time
}

func (f *fakeActivity) CountLessonsCompletedBetween(_ context.Context, _ uuid.UUID, from, to time.Time) (int, error) {
	f.mu.Lock()
	f.gotFrom, f.gotTo = from, to
	f.mu.Unlock()
	return f.lessonsToday, f.lessonsErr
}

func (f *fakeActivity) RecentCompletionDates(_ context.Context, _ uuid.UUID, _ *time.Location, limit int) ([]time.Time, error) {
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	if len(f.dates) > limit {
		return f.dates[:limit], nil
	}
	return f.dates, nil
}

func (f *fakeActivity) CountPerfectQuizAttempts(context.Context, uuid.UUID, int) (int, error) {
	return f.perfectQuizzes, f.quizErr
}

func (f *fakeActivity) CountCertificateShares(context.Context, uuid.UUID) (int, error) {
	return f.shares, f.sharesErr
}

func (f *fakeActivity) HasCompletedCourseWithMinDuration(context.Context, uuid.UUID, int) (bool, error) {
	return f.marathon, f.courseErr
}

type awardKey struct {
	learner uuid.UUID
	badge   uuid.UUID
}

// fakeBadges mimics the unique (learner_id, badge_id) constraint.
type fakeBadges struct {
	mu       sync.Mutex
	catalog  map[string]badge.Badge
	awards   map[awardKey]time.Time
	upserts  int
	awardErr error
}

func newFakeBadges(slugs ...string) *fakeBadges {
	f := &fakeBadges{catalog: map[string]badge.Badge{}, awards: map[awardKey]time.Time{}}
	for _, s := range slugs {
		f.catalog[s] = badge.Badge{ID: uuid.New(), Slug: s, Name: strings.ToUpper(s)}
	}
	return f
}

func (f *fakeBadges) FindBySlug(_ context.Context, slug string) (badge.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.catalog[slug]
	if !ok {
		return badge.Badge{}, badge.ErrNotFound
	}
	return b, nil
}

func (f *fakeBadges) UpsertAward(_ context.Context, learnerID, badgeID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.awardErr != nil {
		return false, f.awardErr
	}
	k := awardKey{learner: learnerID, badge: badgeID}
	if _, ok := f.awards[k]; ok {
		return false, nil
	}
	f.awards[k] = time.Now().UTC()
	return true, nil
}

func (f *fakeBadges) ListCatalog(context.Context) ([]badge.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]badge.Badge, 0, len(f.catalog))
	for _, b := range f.catalog {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBadges) ListAwardsByLearner(_ context.Context, learnerID uuid.UUID) ([]badge.Award, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]badge.Award, 0)
	for _, b := range f.catalog {
		if at, ok := f.awards[awardKey{learner: learnerID, badge: b.ID}]; ok {
			out = append(out, badge.Award{LearnerID: learnerID, BadgeID: b.ID, Slug: b.Slug, Name: b.Name, AwardedAt: at})
		}
	}
	return out, nil
}

func (f *fakeBadges) awardCount(learnerID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for k := range f.awards {
		if k.learner == learnerID {
			n++
		}
	}
	return n
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}
