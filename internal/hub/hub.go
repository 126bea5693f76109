package hub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/events"
	pkglog "github.com/weiawesome/stream-service/pkg/log"
)

// Hub tracks live connections, the participant each one claims, and
// room membership. Membership sets are the only source of viewer counts.
type Hub struct {
	clients      map[string]*Client            // connectionID -> client
	participants map[string]string             // participantID -> connectionID
	rooms        map[string]map[string]*Client // roomID -> connectionID -> client
	evict        chan *Client
	mu           sync.RWMutex
	config       config.WebSocketConfig
}

// NewHub creates a new Hub.
func NewHub(cfg config.WebSocketConfig) *Hub {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 256
	}
	return &Hub{
		clients:      make(map[string]*Client),
		participants: make(map[string]string),
		rooms:        make(map[string]map[string]*Client),
		evict:        make(chan *Client, 64),
		config:       cfg,
	}
}

// NewClient builds an unregistered client for conn.
func (h *Hub) NewClient(participantID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		Hub:           h,
		Conn:          conn,
		Send:          make(chan []byte, h.config.SendBuffer),
		rooms:         make(map[string]struct{}),
	}
}

// Run closes the send channel of clients that fell behind until ctx is
// done. Their write pump then closes the socket, which ends the read pump
// and triggers the normal disconnect path.
func (h *Hub) Run(ctx context.Context) {
	l := pkglog.L()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.evict:
			h.mu.Lock()
			closed := h.closeClient(client)
			h.mu.Unlock()
			if closed {
				l.Warn().Str(pkglog.FieldConnectionID, client.ID).Str(pkglog.FieldParticipantID, client.ParticipantID).Msg("evicting slow client")
			}
		}
	}
}

// Register adds a client and points its participant id at it. It returns
// the connection id previously mapped to the same participant, if any.
func (h *Hub) Register(client *Client) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	previous := h.participants[client.ParticipantID]
	h.participants[client.ParticipantID] = client.ID
	if previous == client.ID {
		previous = ""
	}

	l := pkglog.L()
	l.Info().Str(pkglog.FieldConnectionID, client.ID).Str(pkglog.FieldParticipantID, client.ParticipantID).Msg("client registered")
	return previous
}

// Unregister removes a client from every room and returns the rooms it
// was in. The participant mapping is only dropped if it still points at
// this client.
func (h *Hub) Unregister(client *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return nil
	}

	rooms := make([]string, 0, len(client.rooms))
	for roomID := range client.rooms {
		h.removeMember(client, roomID)
		rooms = append(rooms, roomID)
	}
	delete(h.clients, client.ID)
	if h.participants[client.ParticipantID] == client.ID {
		delete(h.participants, client.ParticipantID)
	}
	h.closeClient(client)

	l := pkglog.L()
	l.Info().Str(pkglog.FieldConnectionID, client.ID).Int("rooms", len(rooms)).Msg("client unregistered")
	return rooms
}

// JoinRoom adds a client to a room and returns the new room size.
func (h *Hub) JoinRoom(client *Client, roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]*Client)
	}
	h.rooms[roomID][client.ID] = client
	client.rooms[roomID] = struct{}{}
	return len(h.rooms[roomID])
}

// LeaveRoom removes a client from a room. It returns the new room size
// and whether the client was a member.
func (h *Hub) LeaveRoom(client *Client, roomID string) (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, member := client.rooms[roomID]
	h.removeMember(client, roomID)
	return len(h.rooms[roomID]), member
}

// DropRoom removes every member from a room and returns how many there were.
func (h *Hub) DropRoom(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.rooms[roomID]
	for _, client := range members {
		delete(client.rooms, roomID)
	}
	delete(h.rooms, roomID)
	return len(members)
}

// RoomSize returns the number of connections in a room.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// InRoom reports whether a connection is a member of roomID.
func (h *Hub) InRoom(connectionID, roomID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomID][connectionID]
	return ok
}

// ConnectionFor returns the connection currently claimed by participantID.
func (h *Hub) ConnectionFor(participantID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	id, ok := h.participants[participantID]
	return id, ok
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendToClient queues data for one connection. It reports false if the
// connection is unknown.
func (h *Hub) SendToClient(connectionID string, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connectionID]
	if !ok {
		return false
	}
	h.enqueue(client, data)
	return true
}

// BroadcastToRoom queues data for every member of a room.
func (h *Hub) BroadcastToRoom(roomID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[roomID] {
		h.enqueue(client, data)
	}
}

// BroadcastAll queues data for every connection.
func (h *Hub) BroadcastAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		h.enqueue(client, data)
	}
}

// Deliver fans an event out to its audience. It is the hub's event bus sink.
func (h *Hub) Deliver(ctx context.Context, e events.Event) {
	data, err := e.Encode()
	if err != nil {
		l := pkglog.Ctx(ctx)
		l.Error().Err(err).Str("event", string(e.Type)).Msg("failed to encode event")
		return
	}

	switch e.Audience {
	case events.Everyone:
		h.BroadcastAll(data)
	case events.Room:
		h.BroadcastToRoom(e.RoomID, data)
	case events.Connection:
		h.SendToClient(e.ConnectionID, data)
	}
}

// Shutdown closes every client's send channel so write pumps send a
// close frame and exit.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		h.closeClient(client)
	}
}

// enqueue must be called with h.mu held.
func (h *Hub) enqueue(client *Client, data []byte) {
	if client.closed {
		return
	}
	select {
	case client.Send <- data:
	default:
		// Client's send buffer is full
		select {
		case h.evict <- client:
		default:
		}
	}
}

// removeMember must be called with h.mu write-locked.
func (h *Hub) removeMember(client *Client, roomID string) {
	delete(client.rooms, roomID)
	if roomClients, ok := h.rooms[roomID]; ok {
		delete(roomClients, client.ID)
		if len(roomClients) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// closeClient must be called with h.mu write-locked.
func (h *Hub) closeClient(client *Client) bool {
	if client.closed {
		return false
	}
	client.closed = true
	close(client.Send)
	return true
}
