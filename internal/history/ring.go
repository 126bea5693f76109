package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/store"
	"github.com/weiawesome/stream-service/pkg/log"
)

// DefaultMaxMessages is the per-room history cap.
const DefaultMaxMessages = 20

// Ring keeps the newest messages of each room, newest first.
type Ring struct {
	gw  store.Gateway
	max int
}

// NewRing creates a ring holding at most max messages per room.
func NewRing(gw store.Gateway, max int) *Ring {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &Ring{gw: gw, max: max}
}

// Max returns the per-room cap.
func (h *Ring) Max() int {
	return h.max
}

// Append prepends msg and evicts anything beyond the cap in one batch.
func (h *Ring) Append(ctx context.Context, roomID string, msg domain.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	key := store.MessagesKey(roomID)
	return h.gw.Batch(ctx, func(b store.Batch) {
		b.ListPushFront(key, string(data))
		b.ListTrim(key, 0, int64(h.max-1))
	})
}

// List returns the stored messages newest first. A room without history
// yields an empty slice.
func (h *Ring) List(ctx context.Context, roomID string) ([]domain.ChatMessage, error) {
	values, err := h.gw.ListRange(ctx, store.MessagesKey(roomID), 0, int64(h.max-1))
	if err != nil {
		return nil, err
	}

	messages := make([]domain.ChatMessage, 0, len(values))
	for _, v := range values {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(v), &msg); err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Str(log.FieldStreamID, roomID).Msg("skipping undecodable chat message")
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Clear drops a room's history.
func (h *Ring) Clear(ctx context.Context, roomID string) error {
	return h.gw.Delete(ctx, store.MessagesKey(roomID))
}
