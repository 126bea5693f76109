package session

import (
	"context"
	"strings"

	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/store"
)

// Membership decides how many connections a room has. The hub always
// tracks local membership for fan-out; a Membership is the source of the
// persisted viewer count.
type Membership interface {
	Add(ctx context.Context, roomID string, client *hub.Client) error
	Remove(ctx context.Context, roomID string, client *hub.Client) error
	Count(ctx context.Context, roomID string) (int, error)
	// Present reports whether participantID is joined to roomID through
	// any connection other than exceptConn.
	Present(ctx context.Context, roomID, participantID, exceptConn string) (bool, error)
}

// LocalMembership counts the hub's own members. It is correct when one
// instance serves every connection.
type LocalMembership struct {
	hub *hub.Hub
}

// NewLocalMembership creates a hub-backed membership.
func NewLocalMembership(h *hub.Hub) *LocalMembership {
	return &LocalMembership{hub: h}
}

func (m *LocalMembership) Add(context.Context, string, *hub.Client) error    { return nil }
func (m *LocalMembership) Remove(context.Context, string, *hub.Client) error { return nil }

func (m *LocalMembership) Count(_ context.Context, roomID string) (int, error) {
	return m.hub.RoomSize(roomID), nil
}

func (m *LocalMembership) Present(_ context.Context, roomID, participantID, exceptConn string) (bool, error) {
	current, ok := m.hub.ConnectionFor(participantID)
	if !ok || current == exceptConn {
		return false, nil
	}
	return m.hub.InRoom(current, roomID), nil
}

// SetStore is the slice of the gateway shared membership needs.
type SetStore interface {
	SetAdd(ctx context.Context, key, member string) error
	SetRemove(ctx context.Context, key, member string) error
	SetMembers(ctx context.Context, key string) ([]string, error)
	SetCount(ctx context.Context, key string) (int, error)
}

// SharedMembership keeps one Redis set per room holding every joined
// connection of every instance, so all instances agree on the count.
// Entries of an instance that dies without disconnecting its clients stay
// until the room is removed.
type SharedMembership struct {
	sets       SetStore
	instanceID string
}

// NewSharedMembership creates a Redis-backed membership for instanceID.
func NewSharedMembership(sets SetStore, instanceID string) *SharedMembership {
	return &SharedMembership{sets: sets, instanceID: instanceID}
}

func (m *SharedMembership) Add(ctx context.Context, roomID string, client *hub.Client) error {
	return m.sets.SetAdd(ctx, store.MembersKey(roomID), m.member(client))
}

func (m *SharedMembership) Remove(ctx context.Context, roomID string, client *hub.Client) error {
	return m.sets.SetRemove(ctx, store.MembersKey(roomID), m.member(client))
}

func (m *SharedMembership) Count(ctx context.Context, roomID string) (int, error) {
	return m.sets.SetCount(ctx, store.MembersKey(roomID))
}

func (m *SharedMembership) Present(ctx context.Context, roomID, participantID, exceptConn string) (bool, error) {
	members, err := m.sets.SetMembers(ctx, store.MembersKey(roomID))
	if err != nil {
		return false, err
	}
	for _, member := range members {
		// instance|connection|participant
		parts := strings.SplitN(member, "|", 3)
		if len(parts) != 3 {
			continue
		}
		if parts[2] == participantID && parts[1] != exceptConn {
			return true, nil
		}
	}
	return false, nil
}

func (m *SharedMembership) member(client *hub.Client) string {
	return m.instanceID + "|" + client.ID + "|" + client.ParticipantID
}
