package kafka

import (
	"context"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	pkglog "github.com/weiawesome/stream-service/pkg/log"
)

// Attach subscribes producer to the lifecycle events on bus. Only events
// raised on this instance are produced, so relayed copies are not
// published twice.
func Attach(bus *events.Bus, producer BroadcastEventProducer) events.Unsubscribe {
	handle := func(ctx context.Context, e events.Event) {
		if e.Origin != "" {
			return
		}
		if err := forward(ctx, producer, e); err != nil {
			l := pkglog.Ctx(ctx)
			l.Error().Err(err).Str(pkglog.FieldStreamID, e.RoomID).Str("event", string(e.Type)).Msg("failed to produce stream event")
		}
	}

	unsubs := []events.Unsubscribe{
		bus.Subscribe(domain.EventStreamStarted, handle),
		bus.Subscribe(domain.EventLiveStatusChanged, handle),
		bus.Subscribe(domain.EventStreamEnded, handle),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func forward(ctx context.Context, producer BroadcastEventProducer, e events.Event) error {
	switch payload := e.Payload.(type) {
	case domain.StreamStartedMessage:
		if !payload.Stream.IsLive {
			return nil
		}
		return producer.ProduceBroadcastStarted(ctx, payload.Stream.ID, payload.Stream.Creator)
	case domain.LiveStatusChangedMessage:
		if payload.IsLive {
			return producer.ProduceBroadcastStarted(ctx, payload.StreamID, e.Actor)
		}
		return producer.ProduceBroadcastStopped(ctx, payload.StreamID, e.Actor, ReasonExplicit)
	case domain.StreamEndedMessage:
		return producer.ProduceBroadcastStopped(ctx, payload.StreamID, e.Actor, ReasonEnded)
	}
	return nil
}
