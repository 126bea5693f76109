package events

import (
	"context"
	"sync"

	"github.com/weiawesome/stream-service/internal/domain"
)

// Handler receives published events. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(ctx context.Context, e Event)

// Unsubscribe removes a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

type subscription struct {
	id      uint64
	handler Handler
}

// Bus is a typed in-process event bus.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	byType map[domain.EventType][]subscription
	all    []subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{byType: make(map[domain.EventType][]subscription)}
}

// Subscribe registers h for events of type t.
func (b *Bus) Subscribe(t domain.EventType, h Handler) Unsubscribe {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.byType[t] = append(b.byType[t], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.byType[t] = remove(b.byType[t], id)
			if len(b.byType[t]) == 0 {
				delete(b.byType, t)
			}
		})
	}
}

// SubscribeAll registers h for every event.
func (b *Bus) SubscribeAll(h Handler) Unsubscribe {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.all = append(b.all, subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.all = remove(b.all, id)
		})
	}
}

// Publish delivers e to type subscribers first, then to catch-all
// subscribers, in subscription order.
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.byType[e.Type])+len(b.all))
	for _, s := range b.byType[e.Type] {
		handlers = append(handlers, s.handler)
	}
	for _, s := range b.all {
		handlers = append(handlers, s.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}

func remove(subs []subscription, id uint64) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
