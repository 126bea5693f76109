package kafka

//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_producer.go -package=mocks

import "context"

// StreamEvent represents a stream lifecycle change published for
// downstream consumers.
type StreamEvent struct {
	Type      string `json:"type"` // "broadcast_started" | "broadcast_stopped"
	StreamID  string `json:"stream_id"`
	CreatorID string `json:"creator_id"`
	Reason    string `json:"reason,omitempty"` // "explicit" | "ended"
	Timestamp int64  `json:"timestamp"`
}

// Event types
const (
	EventBroadcastStarted = "broadcast_started"
	EventBroadcastStopped = "broadcast_stopped"
)

// Stop reasons
const (
	ReasonExplicit = "explicit"
	ReasonEnded    = "ended"
)

// BroadcastEventProducer defines the interface for producing lifecycle events.
type BroadcastEventProducer interface {
	ProduceBroadcastStarted(ctx context.Context, streamID, creatorID string) error
	ProduceBroadcastStopped(ctx context.Context, streamID, creatorID, reason string) error
	Close() error
}
