package events

import (
	"context"
	"errors"

	"learnmatch/internal/domain/event"
	"learnmatch/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultQueueSize = 256

var ErrNilDispatcher = errors.New("nil dispatcher")

// Handler evaluates a learner after an activity event and reports newly awarded
// badge slugs.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.Event) ([]string, error)
}

type Notifier interface {
	NotifyBadgesAwarded(learnerID uuid.UUID, slugs []string)
}

// Dispatcher decouples activity producers from badge evaluation with a bounded
// in-process queue.
type Dispatcher struct {
	queue    chan event.Event
	handler  Handler
	notifier Notifier
	logger   *zap.Logger
}

func NewDispatcher(size int, handler Handler, notifier Notifier, log *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		queue:    make(chan event.Event, size),
		handler:  handler,
		notifier: notifier,
		logger:   logger.Component(log, "events"),
	}
}

// Publish validates evt and blocks until it is queued or ctx is done.
func (d *Dispatcher) Publish(ctx context.Context, evt event.Event) error {
	if d == nil {
		return ErrNilDispatcher
	}
	if err := evt.Validate(); err != nil {
		return err
	}

	select {
	case d.queue <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) Pending() int {
	if d == nil {
		return 0
	}
	return len(d.queue)
}

// Run handles queued events one at a time until ctx is done. Events still queued
// at that point are dropped.
func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			if n := len(d.queue); n > 0 {
				d.logger.Warn("dispatcher stopped with pending events", zap.Int("pending", n))
			}
			return
		case evt := <-d.queue:
			d.process(ctx, evt)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, evt event.Event) {
	log := d.logger.With(
		zap.String(logger.FieldEventKind, string(evt.Kind)),
		zap.String(logger.FieldLearnerID, evt.LearnerID.String()),
	)

	awarded, err := d.handler.HandleEvent(ctx, evt)
	if err != nil {
		log.Error("handle event", zap.Error(err))
	}
	if len(awarded) == 0 {
		return
	}

	log.Info("badges awarded", zap.Strings("badges", awarded))
	if d.notifier != nil {
		d.notifier.NotifyBadgesAwarded(evt.LearnerID, awarded)
	}
}
