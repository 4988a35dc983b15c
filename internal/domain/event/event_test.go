package event

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseKind(t *testing.T) {
	for _, s := range []string{"lesson_completed", " Course_Completed ", "CERTIFICATE_SHARED", "quiz_attempted"} {
		if _, err := ParseKind(s); err != nil {
			t.Fatalf("%q: unexpected err: %v", s, err)
		}
	}
	if _, err := ParseKind("lesson_started"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestNew(t *testing.T) {
	if _, err := New(KindQuizAttempted, uuid.Nil, time.Now()); !errors.Is(err, ErrMissingLearner) {
		t.Fatalf("expected ErrMissingLearner, got %v", err)
	}
	if _, err := New("bogus", uuid.New(), time.Now()); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	id := uuid.New()
	e, err := New(KindLessonCompleted, id, time.Now())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.LearnerID != id {
		t.Fatalf("unexpected learner id")
	}
}
