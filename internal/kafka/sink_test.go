package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/kafka"
	"github.com/weiawesome/stream-service/internal/mocks"
)

func TestAttachForwardsLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := mocks.NewMockBroadcastEventProducer(ctrl)
	bus := events.NewBus()
	ctx := context.Background()

	unsub := kafka.Attach(bus, producer)

	gomock.InOrder(
		producer.EXPECT().ProduceBroadcastStarted(gomock.Any(), "s1", "alice").Return(nil),
		producer.EXPECT().ProduceBroadcastStopped(gomock.Any(), "s1", "alice", kafka.ReasonExplicit).Return(nil),
		producer.EXPECT().ProduceBroadcastStarted(gomock.Any(), "s2", "bob").Return(nil),
		producer.EXPECT().ProduceBroadcastStopped(gomock.Any(), "s1", "alice", kafka.ReasonEnded).Return(errors.New("queue full")),
	)

	live := func(id string, isLive bool) events.Event {
		e := events.ToEveryone(domain.EventLiveStatusChanged, id, domain.LiveStatusChangedMessage{
			Type: domain.EventLiveStatusChanged, StreamID: id, IsLive: isLive,
		})
		e.Actor = "alice"
		return e
	}

	// not live yet: nothing produced
	bus.Publish(ctx, events.ToEveryone(domain.EventStreamStarted, "s1", domain.StreamStartedMessage{
		Type: domain.EventStreamStarted, Stream: domain.Room{ID: "s1", Creator: "alice"},
	}))
	bus.Publish(ctx, live("s1", true))
	bus.Publish(ctx, live("s1", false))
	bus.Publish(ctx, events.ToEveryone(domain.EventStreamStarted, "s2", domain.StreamStartedMessage{
		Type: domain.EventStreamStarted, Stream: domain.Room{ID: "s2", Creator: "bob", IsLive: true},
	}))

	ended := events.ToEveryone(domain.EventStreamEnded, "s1", domain.StreamEndedMessage{Type: domain.EventStreamEnded, StreamID: "s1"})
	ended.Actor = "alice"
	bus.Publish(ctx, ended)

	// relayed from another instance
	remote := live("s1", true)
	remote.Origin = "other"
	bus.Publish(ctx, remote)

	// unrelated events are ignored
	bus.Publish(ctx, events.ToRoom(domain.EventViewerJoined, "s1", domain.ViewerCountMessage{}))

	unsub()
	bus.Publish(ctx, live("s1", true))
}

func TestStreamEventJSON(t *testing.T) {
	r := require.New(t)

	data, err := json.Marshal(kafka.StreamEvent{Type: kafka.EventBroadcastStarted, StreamID: "s1", CreatorID: "alice", Timestamp: 1})
	r.NoError(err)
	r.JSONEq(`{"type":"broadcast_started","stream_id":"s1","creator_id":"alice","timestamp":1}`, string(data))
}
