package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"learnmatch/internal/domain/event"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeHandler struct {
	mu      sync.Mutex
	seen    []event.Event
	awarded []string
	err     error
}

func (h *fakeHandler) HandleEvent(_ context.Context, evt event.Event) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, evt)
	return h.awarded, h.err
}

func (h *fakeHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

type notification struct {
	learnerID uuid.UUID
	slugs     []string
}

type fakeNotifier struct {
	ch chan notification
}

func (n *fakeNotifier) NotifyBadgesAwarded(learnerID uuid.UUID, slugs []string) {
	n.ch <- notification{learnerID: learnerID, slugs: slugs}
}

func TestDispatcher_PublishRejectsInvalid(t *testing.T) {
	d := NewDispatcher(1, &fakeHandler{}, nil, nil)

	err := d.Publish(context.Background(), event.Event{Kind: "unknown", LearnerID: uuid.New()})
	if !errors.Is(err, event.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	err = d.Publish(context.Background(), event.Event{Kind: event.KindLessonCompleted})
	if !errors.Is(err, event.ErrMissingLearner) {
		t.Fatalf("expected ErrMissingLearner, got %v", err)
	}
	if d.Pending() != 0 {
		t.Fatalf("expected empty queue")
	}
}

func TestDispatcher_PublishBlocksUntilContextDone(t *testing.T) {
	d := NewDispatcher(1, &fakeHandler{}, nil, nil)
	evt := event.Event{Kind: event.KindQuizAttempted, LearnerID: uuid.New()}

	if err := d.Publish(context.Background(), evt); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Publish(ctx, evt); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded on full queue, got %v", err)
	}
}

func TestDispatcher_RunHandlesAndNotifies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := &fakeHandler{awarded: []string{"social-learner"}}
	notifier := &fakeNotifier{ch: make(chan notification, 1)}
	d := NewDispatcher(4, handler, notifier, zap.NewNop())
	go d.Run(ctx)

	id := uuid.New()
	if err := d.Publish(ctx, event.Event{Kind: event.KindCertificateShared, LearnerID: id}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	select {
	case n := <-notifier.ch:
		if n.learnerID != id || len(n.slugs) != 1 || n.slugs[0] != "social-learner" {
			t.Fatalf("unexpected notification %+v", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected notification")
	}
}

func TestDispatcher_HandlerErrorLoggedAndSkipsNotify(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, logs := observer.New(zapcore.ErrorLevel)
	handler := &fakeHandler{err: errors.New("db down")}
	notifier := &fakeNotifier{ch: make(chan notification, 1)}
	d := NewDispatcher(4, handler, notifier, zap.New(core))
	go d.Run(ctx)

	if err := d.Publish(ctx, event.Event{Kind: event.KindLessonCompleted, LearnerID: uuid.New()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for logs.FilterMessage("handle event").Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected error log")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if handler.count() != 1 {
		t.Fatalf("expected one handled event, got %d", handler.count())
	}
	select {
	case n := <-notifier.ch:
		t.Fatalf("unexpected notification %+v", n)
	default:
	}
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(1, &fakeHandler{}, nil, nil)

	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
