package ws

import (
	"context"
	"sync"

	"learnmatch/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type delivery struct {
	learnerID uuid.UUID
	message   []byte
}

// Hub tracks open sockets per learner and delivers messages to all sockets of
// one learner. Run owns delivery; registration goes straight to the client map so
// it never waits on Run.
type Hub struct {
	clients map[uuid.UUID]map[*Client]struct{}
	deliver chan delivery
	stopped bool
	mutex   sync.RWMutex
	logger  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*Client]struct{}),
		deliver: make(chan delivery, 1024),
		logger:  logger.Component(log, "ws"),
	}
}

// Run delivers queued messages until ctx is done, then closes every client's
// send channel. Clients registering after that are closed immediately.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.learnerID]))
			for c := range h.clients[d.learnerID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.message:
				default:
					h.remove(client)
				}
			}
			h.logger.Debug("ws delivered",
				zap.String(logger.FieldLearnerID, d.learnerID.String()),
				zap.Int("clients", len(targets)),
			)
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	if h.stopped {
		h.mutex.Unlock()
		close(client.send)
		return
	}
	set, ok := h.clients[client.learnerID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.learnerID] = set
	}
	set[client] = struct{}{}
	total := h.countLocked()
	h.mutex.Unlock()
	h.logger.Debug("ws connected",
		zap.String(logger.FieldLearnerID, client.learnerID.String()),
		zap.Int("total_clients", total),
	)
}

// Unregister drops client and closes its send channel. Unknown clients and
// clients already closed by shutdown are ignored.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.remove(client)
}

// SendTo queues message for every socket the learner has open. It never blocks;
// when the queue is full the message is dropped.
func (h *Hub) SendTo(learnerID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.deliver <- delivery{learnerID: learnerID, message: message}:
	default:
		h.logger.Warn("ws delivery dropped", zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.learnerID]
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.learnerID)
		}
	}
	total := h.countLocked()
	h.mutex.Unlock()
	h.logger.Debug("ws disconnected",
		zap.String(logger.FieldLearnerID, client.learnerID.String()),
		zap.Int("total_clients", total),
	)
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.stopped = true
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}
