package event

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindLessonCompleted   Kind = "lesson_completed"
	KindCourseCompleted   Kind = "course_completed"
	KindCertificateShared Kind = "certificate_shared"
	KindQuizAttempted     Kind = "quiz_attempted"
)

var (
	ErrUnknownKind    = errors.New("unknown event kind")
	ErrMissingLearner = errors.New("event has no learner")
)

// Event is a learner activity that may unlock badges.
type Event struct {
	Kind       Kind
	LearnerID  uuid.UUID
	OccurredAt time.Time
}

func New(kind Kind, learnerID uuid.UUID, occurredAt time.Time) (Event, error) {
	e := Event{Kind: kind, LearnerID: learnerID, OccurredAt: occurredAt}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

func (k Kind) Valid() bool {
	switch k {
	case KindLessonCompleted, KindCourseCompleted, KindCertificateShared, KindQuizAttempted:
		return true
	default:
		return false
	}
}

func (e Event) Validate() error {
	if !e.Kind.Valid() {
		return ErrUnknownKind
	}
	if e.LearnerID == uuid.Nil {
		return ErrMissingLearner
	}
	return nil
}
