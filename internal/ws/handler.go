package ws

import (
	"net/http"

	"learnmatch/internal/delivery/http/middleware"
	"learnmatch/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub    *Hub
	logger *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger.Component(log, "ws")}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleBadgesWS upgrades an authenticated request and subscribes the socket to
// the learner's badge notifications.
func (h *Handler) HandleBadgesWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	learnerID, ok := middleware.LearnerID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn, learnerID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
