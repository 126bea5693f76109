package session

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/weiawesome/stream-service/internal/audit"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/pkg/log"
)

// RoomStore is the slice of the registry the manager needs.
type RoomStore interface {
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	MutateRoom(ctx context.Context, id string, fn func(*domain.Room)) (*domain.Room, error)
	SetRole(ctx context.Context, id, participantID string, role domain.Role) error
}

// RoomCount is a room's membership size after a change.
type RoomCount struct {
	RoomID string
	Count  int
}

// countPasses bounds how often a count is rewritten when membership moves
// while it is being persisted.
const countPasses = 3

// Manager ties live connections to room membership and keeps each room's
// persisted viewer count equal to its membership size.
type Manager struct {
	hub     *hub.Hub
	rooms   RoomStore
	members Membership
}

// NewManager creates a session manager. A nil members counts the hub's
// own connections.
func NewManager(h *hub.Hub, rooms RoomStore, members Membership) *Manager {
	if members == nil {
		members = NewLocalMembership(h)
	}
	return &Manager{hub: h, rooms: rooms, members: members}
}

// Connect registers a connection for participantID.
func (m *Manager) Connect(ctx context.Context, participantID string, conn *websocket.Conn) (*hub.Client, error) {
	if participantID == "" {
		return nil, domain.Errorf(domain.ErrBadRequest, "User ID required")
	}

	client := m.hub.NewClient(participantID, conn)
	if previous := m.hub.Register(client); previous != "" {
		l := log.Ctx(ctx)
		l.Info().Str(log.FieldParticipantID, participantID).Str("superseded", previous).Msg("participant reconnected")
	}
	audit.Log(ctx, audit.ActionConnect, participantID, "", "connection opened")
	return client, nil
}

// Join adds the client to a room as audience and returns the new count.
func (m *Manager) Join(ctx context.Context, client *hub.Client, roomID string) (int, error) {
	room, err := m.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return 0, err
	}
	if room.Creator == client.ParticipantID {
		return 0, domain.Errorf(domain.ErrForbidden, "Cannot join own stream")
	}

	if err := m.rooms.SetRole(ctx, roomID, client.ParticipantID, domain.RoleAudience); err != nil {
		return 0, err
	}

	m.hub.JoinRoom(client, roomID)
	if err := m.members.Add(ctx, roomID, client); err != nil {
		m.hub.LeaveRoom(client, roomID)
		return 0, err
	}

	count, err := m.persistCount(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// ended while joining
			m.hub.LeaveRoom(client, roomID)
			m.members.Remove(ctx, roomID, client)
		}
		return 0, err
	}
	return count, nil
}

// Leave removes the client from a room and returns the new count. Leaving
// a room the client is not in, or one that no longer exists, succeeds.
func (m *Manager) Leave(ctx context.Context, client *hub.Client, roomID string) (int, error) {
	if err := m.rooms.SetRole(ctx, roomID, client.ParticipantID, domain.RoleNone); err != nil {
		return 0, err
	}

	m.hub.LeaveRoom(client, roomID)
	if err := m.members.Remove(ctx, roomID, client); err != nil {
		return 0, err
	}

	count, err := m.persistCount(ctx, roomID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}
	return count, nil
}

// Disconnect drops the client and all its memberships and recomputes the
// viewer count of every room it was in. The participant's role is kept
// where another of its connections is still joined. Failures are logged;
// the counts returned are the membership sizes.
func (m *Manager) Disconnect(ctx context.Context, client *hub.Client) []RoomCount {
	rooms := m.hub.Unregister(client)
	l := log.Ctx(ctx)

	counts := make([]RoomCount, 0, len(rooms))
	for _, roomID := range rooms {
		if err := m.members.Remove(ctx, roomID, client); err != nil {
			l.Warn().Err(err).Str(log.FieldStreamID, roomID).Msg("failed to remove membership on disconnect")
		}
		m.clearRole(ctx, client, roomID)

		count, err := m.persistCount(ctx, roomID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			l.Warn().Err(err).Str(log.FieldStreamID, roomID).Msg("failed to update viewers on disconnect")
		}
		counts = append(counts, RoomCount{RoomID: roomID, Count: count})
	}
	return counts
}

// CloseRoom removes every connection from a room that has ended.
func (m *Manager) CloseRoom(roomID string) int {
	return m.hub.DropRoom(roomID)
}

func (m *Manager) clearRole(ctx context.Context, client *hub.Client, roomID string) {
	l := log.Ctx(ctx)

	present, err := m.members.Present(ctx, roomID, client.ParticipantID, client.ID)
	if err != nil {
		l.Warn().Err(err).Str(log.FieldStreamID, roomID).Msg("failed to check other connections on disconnect")
	}
	if present {
		return
	}
	if err := m.rooms.SetRole(ctx, roomID, client.ParticipantID, domain.RoleNone); err != nil {
		l.Warn().Err(err).Str(log.FieldStreamID, roomID).Msg("failed to clear role on disconnect")
	}
}

// persistCount writes the membership size into the room record. If the
// size moved while writing, the write is repeated so the last writer
// stores the latest size.
func (m *Manager) persistCount(ctx context.Context, roomID string) (int, error) {
	count, err := m.members.Count(ctx, roomID)
	if err != nil {
		return 0, err
	}

	for pass := 1; ; pass++ {
		if _, err := m.rooms.MutateRoom(ctx, roomID, func(room *domain.Room) {
			room.Viewers = count
		}); err != nil {
			return count, err
		}

		after, err := m.members.Count(ctx, roomID)
		if err != nil || after == count || pass == countPasses {
			return count, nil
		}
		count = after
	}
}
