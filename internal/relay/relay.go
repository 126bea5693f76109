package relay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/pkg/log"
	"github.com/weiawesome/stream-service/pkg/pubsub"
)

// DefaultChannel carries events between instances.
const DefaultChannel = "stream:events"

const resubscribeDelay = 2 * time.Second

// Relay shares room and global broadcasts with other instances. Events
// for a single connection stay local.
type Relay struct {
	ps         pubsub.PubSub
	channel    string
	instanceID string
	deliver    events.Handler
}

// New creates a relay. deliver receives events published by other
// instances.
func New(ps pubsub.PubSub, channel, instanceID string, deliver events.Handler) *Relay {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Relay{
		ps:         ps,
		channel:    channel,
		instanceID: instanceID,
		deliver:    deliver,
	}
}

// Forward publishes a locally raised event. It is an event bus sink.
func (r *Relay) Forward(ctx context.Context, e events.Event) {
	if e.Origin != "" || e.Audience == events.Connection {
		return
	}
	l := log.Ctx(ctx)

	data, err := e.Encode()
	if err != nil {
		l.Error().Err(err).Str("event", string(e.Type)).Msg("relay: failed to encode event")
		return
	}
	msg, err := pubsub.NewEvent(string(e.Type), e.RoomID, json.RawMessage(data))
	if err != nil {
		l.Error().Err(err).Msg("relay: failed to build event")
		return
	}
	msg.Audience = string(e.Audience)
	msg.Origin = r.instanceID

	if err := r.ps.Publish(ctx, r.channel, msg); err != nil {
		l.Warn().Err(err).Str("event", string(e.Type)).Msg("relay: publish failed")
	}
}

// Run delivers events from other instances until ctx is done,
// resubscribing when the subscription drops.
func (r *Relay) Run(ctx context.Context) {
	l := log.L()

	for {
		if err := r.runSubscription(ctx); err != nil && ctx.Err() == nil {
			l.Warn().Err(err).Str("channel", r.channel).Msg("relay subscription error, reconnecting")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (r *Relay) runSubscription(ctx context.Context) error {
	ch, err := r.ps.Subscribe(ctx, r.channel)
	if err != nil {
		return err
	}
	defer r.ps.Unsubscribe(context.Background(), r.channel)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.handle(ctx, msg)
		}
	}
}

func (r *Relay) handle(ctx context.Context, msg *pubsub.Event) {
	if msg.Origin == r.instanceID {
		return
	}

	audience := events.Audience(msg.Audience)
	if audience != events.Everyone && audience != events.Room {
		return
	}

	r.deliver(ctx, events.Event{
		Type:     domain.EventType(msg.Type),
		Audience: audience,
		RoomID:   msg.RoomID,
		Origin:   msg.Origin,
		Payload:  msg.Payload,
	})
}
