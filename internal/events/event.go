package events

import (
	"encoding/json"

	"github.com/weiawesome/stream-service/internal/domain"
)

// Audience selects who receives an event.
type Audience string

const (
	Everyone   Audience = "everyone"
	Room       Audience = "room"
	Connection Audience = "connection"
)

// Event is a state change ready for fan-out. Payload is the full outbound
// frame, including its type tag.
type Event struct {
	Type         domain.EventType
	Audience     Audience
	RoomID       string
	ConnectionID string
	// Actor is the participant whose action produced the event.
	Actor string
	// Origin is the instance that produced the event; empty means local.
	Origin  string
	Payload interface{}
}

// Encode marshals the payload into a wire frame.
func (e Event) Encode() ([]byte, error) {
	if raw, ok := e.Payload.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(e.Payload)
}

// ToEveryone builds an event for all connections.
func ToEveryone(t domain.EventType, roomID string, payload interface{}) Event {
	return Event{Type: t, Audience: Everyone, RoomID: roomID, Payload: payload}
}

// ToRoom builds an event for the members of roomID.
func ToRoom(t domain.EventType, roomID string, payload interface{}) Event {
	return Event{Type: t, Audience: Room, RoomID: roomID, Payload: payload}
}

// ToConnection builds an event for a single connection.
func ToConnection(t domain.EventType, connectionID string, payload interface{}) Event {
	return Event{Type: t, Audience: Connection, ConnectionID: connectionID, Payload: payload}
}
