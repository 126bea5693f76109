package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weiawesome/stream-service/internal/domain"
)

func TestBusDeliversByType(t *testing.T) {
	r := require.New(t)
	bus := NewBus()
	ctx := context.Background()

	var started, all []domain.EventType
	unsub := bus.Subscribe(domain.EventStreamStarted, func(_ context.Context, e Event) {
		started = append(started, e.Type)
	})
	bus.SubscribeAll(func(_ context.Context, e Event) {
		all = append(all, e.Type)
	})

	bus.Publish(ctx, ToEveryone(domain.EventStreamStarted, "s1", nil))
	bus.Publish(ctx, ToEveryone(domain.EventStreamEnded, "s1", nil))

	r.Equal([]domain.EventType{domain.EventStreamStarted}, started)
	r.Equal([]domain.EventType{domain.EventStreamStarted, domain.EventStreamEnded}, all)

	unsub()
	unsub()
	bus.Publish(ctx, ToEveryone(domain.EventStreamStarted, "s2", nil))
	r.Len(started, 1)
	r.Len(all, 3)
}

func TestEventEncode(t *testing.T) {
	r := require.New(t)

	e := ToRoom(domain.EventViewerJoined, "s1", domain.ViewerCountMessage{
		Type:     domain.EventViewerJoined,
		StreamID: "s1",
		Count:    2,
	})
	data, err := e.Encode()
	r.NoError(err)
	r.JSONEq(`{"type":"viewerJoined","streamId":"s1","count":2}`, string(data))
	r.Equal(Room, e.Audience)
}
