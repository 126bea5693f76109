package dispatcher

//go:generate go run go.uber.org/mock/mockgen -source=interface.go -destination=../mocks/mock_dispatcher.go -package=mocks

import (
	"context"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/session"
)

// RoomRegistry stores rooms and role maps.
type RoomRegistry interface {
	CreateRoom(ctx context.Context, room *domain.Room) error
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	RemoveRoom(ctx context.Context, id string) error
	MutateRoom(ctx context.Context, id string, fn func(*domain.Room)) (*domain.Room, error)
}

// ChatHistory stores per-room chat history.
type ChatHistory interface {
	Append(ctx context.Context, roomID string, msg domain.ChatMessage) error
	List(ctx context.Context, roomID string) ([]domain.ChatMessage, error)
}

// Sessions manages room membership of live connections.
type Sessions interface {
	Join(ctx context.Context, client *hub.Client, roomID string) (int, error)
	Leave(ctx context.Context, client *hub.Client, roomID string) (int, error)
	Disconnect(ctx context.Context, client *hub.Client) []session.RoomCount
	CloseRoom(roomID string) int
}

// Publisher fans events out.
type Publisher interface {
	Publish(ctx context.Context, e events.Event)
}
