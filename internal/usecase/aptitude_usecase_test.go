package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnmatch/internal/domain/job"
	"learnmatch/internal/domain/learner"
	"learnmatch/internal/domain/matching"

	"github.com/google/uuid"
)

func TestParseSkillLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want learner.SkillLevel
		ok   bool
	}{
		{raw: "beginner", want: learner.SkillLevelBeginner, ok: true},
		{raw: " INTERMEDIATE ", want: learner.SkillLevelIntermediate, ok: true},
		{raw: "Advanced", want: learner.SkillLevelAdvanced, ok: true},
		{raw: "expert", ok: false},
		{raw: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := ParseSkillLevel(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("%q: expected (%q, %v), got (%q, %v)", tc.raw, tc.want, tc.ok, got, ok)
		}
	}
}

func TestAptitude_Create(t *testing.T) {
	id := uuid.New()
	category := uuid.New()
	uc := NewAptitudeUsecase(newFakeLearners(id), newFakeProfiles(), nil, nil)

	p, err := uc.Create(context.Background(), id, AptitudeInput{
		SkillLevel: "Beginner",
		Interests:  []uuid.UUID{category, category, uuid.Nil},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.SkillLevel != learner.SkillLevelBeginner {
		t.Fatalf("expected normalized level, got %q", p.SkillLevel)
	}
	if p.Interests.Len() != 1 || !p.Interests.Contains(category) {
		t.Fatalf("unexpected interests %v", p.Interests.Slice())
	}

	if _, err := uc.Create(context.Background(), id, AptitudeInput{SkillLevel: "advanced"}); !errors.Is(err, ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestAptitude_Create_Validation(t *testing.T) {
	id := uuid.New()
	uc := NewAptitudeUsecase(newFakeLearners(id), newFakeProfiles(), nil, nil)

	if _, err := uc.Create(context.Background(), id, AptitudeInput{SkillLevel: "guru"}); !errors.Is(err, ErrInvalidSkillLevel) {
		t.Fatalf("expected ErrInvalidSkillLevel, got %v", err)
	}
	if _, err := uc.Create(context.Background(), uuid.New(), AptitudeInput{SkillLevel: "beginner"}); !errors.Is(err, ErrLearnerNotFound) {
		t.Fatalf("expected ErrLearnerNotFound, got %v", err)
	}
	if _, err := uc.Create(context.Background(), uuid.Nil, AptitudeInput{SkillLevel: "beginner"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAptitude_Create_InvalidatesCachedMatches(t *testing.T) {
	id := uuid.New()
	profiles := newFakeProfiles()
	cache := newFakeCache()
	matcher := NewMatchingUsecase(profiles, fakeJobs{}, cache, time.Minute, nil)
	apt := NewAptitudeUsecase(newFakeLearners(id), profiles, cache, nil)

	posting := job.Posting{ID: uuid.New(), RequiredSkills: []string{"go"}}
	before, err := matcher.ComputeMatch(context.Background(), posting, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if before.Label != matching.LabelNotAFit || before.Value != 0 {
		t.Fatalf("expected no-profile result, got %+v", before)
	}

	if _, err := apt.Create(context.Background(), id, AptitudeInput{SkillLevel: "advanced"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != MatchCachePattern(id) {
		t.Fatalf("expected invalidation of %s, got %v", MatchCachePattern(id), cache.deleted)
	}

	after, err := matcher.ComputeMatch(context.Background(), posting, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if after.Value != 54 {
		t.Fatalf("expected fresh score 54, got %v", after.Value)
	}
}

func TestAptitude_Get(t *testing.T) {
	id := uuid.New()
	uc := NewAptitudeUsecase(newFakeLearners(id), newFakeProfiles(), nil, nil)

	if _, err := uc.Get(context.Background(), id); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := uc.Create(context.Background(), id, AptitudeInput{SkillLevel: "beginner"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	p, err := uc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.LearnerID != id {
		t.Fatalf("unexpected profile %+v", p)
	}
}
