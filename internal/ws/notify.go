package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const TypeBadgeAwarded = "badge_awarded"

type BadgeAwardedEvent struct {
	Type      string   `json:"type"`
	LearnerID string   `json:"learner_id"`
	Badges    []string `json:"badges"`
	Timestamp string   `json:"timestamp"`
}

// NotifyBadgesAwarded pushes one badge_awarded message to the learner's sockets.
// Empty slug lists are ignored.
func (h *Hub) NotifyBadgesAwarded(learnerID uuid.UUID, slugs []string) {
	if h == nil || learnerID == uuid.Nil || len(slugs) == 0 {
		return
	}

	evt := BadgeAwardedEvent{
		Type:      TypeBadgeAwarded,
		LearnerID: learnerID.String(),
		Badges:    slugs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("encode badge notification", zap.Error(err))
		return
	}

	h.SendTo(learnerID, b)
}
