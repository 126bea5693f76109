package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
)

func newTestHub(buffer int) *Hub {
	return NewHub(config.WebSocketConfig{SendBuffer: buffer})
}

func register(h *Hub, participantID string) *Client {
	c := h.NewClient(participantID, nil)
	h.Register(c)
	return c
}

func drain(c *Client) []string {
	var out []string
	for {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				return out
			}
			out = append(out, string(msg))
		default:
			return out
		}
	}
}

func TestMembershipCounts(t *testing.T) {
	r := require.New(t)
	h := newTestHub(8)

	a := register(h, "alice")
	b := register(h, "bob")

	r.Equal(1, h.JoinRoom(a, "s1"))
	r.Equal(2, h.JoinRoom(b, "s1"))
	r.Equal(2, h.JoinRoom(b, "s1"))
	r.True(h.InRoom(b.ID, "s1"))

	n, member := h.LeaveRoom(b, "s1")
	r.Equal(1, n)
	r.True(member)

	n, member = h.LeaveRoom(b, "s1")
	r.Equal(1, n)
	r.False(member)

	r.Equal(1, h.DropRoom("s1"))
	r.Equal(0, h.RoomSize("s1"))
	r.False(h.InRoom(a.ID, "s1"))
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := require.New(t)
	h := newTestHub(8)

	first := register(h, "alice")
	second := h.NewClient("alice", nil)
	r.Equal(first.ID, h.Register(second))

	id, ok := h.ConnectionFor("alice")
	r.True(ok)
	r.Equal(second.ID, id)

	// the superseded connection must not unmap the newer one
	h.Unregister(first)
	id, ok = h.ConnectionFor("alice")
	r.True(ok)
	r.Equal(second.ID, id)

	h.Unregister(second)
	_, ok = h.ConnectionFor("alice")
	r.False(ok)
	r.Equal(0, h.ClientCount())
}

func TestUnregisterReturnsRoomsAndClosesSend(t *testing.T) {
	r := require.New(t)
	h := newTestHub(8)

	a := register(h, "alice")
	h.JoinRoom(a, "s1")
	h.JoinRoom(a, "s2")

	rooms := h.Unregister(a)
	r.ElementsMatch([]string{"s1", "s2"}, rooms)
	r.Equal(0, h.RoomSize("s1"))

	_, ok := <-a.Send
	r.False(ok)

	r.Nil(h.Unregister(a))
}

func TestDeliverByAudience(t *testing.T) {
	r := require.New(t)
	h := newTestHub(8)
	ctx := context.Background()

	a := register(h, "alice")
	b := register(h, "bob")
	h.JoinRoom(b, "s1")

	h.Deliver(ctx, events.ToEveryone(domain.EventStreamEnded, "s9", domain.StreamEndedMessage{Type: domain.EventStreamEnded, StreamID: "s9"}))
	h.Deliver(ctx, events.ToRoom(domain.EventViewerJoined, "s1", domain.ViewerCountMessage{Type: domain.EventViewerJoined, StreamID: "s1", Count: 1}))
	h.Deliver(ctx, events.ToConnection(domain.EventPong, a.ID, domain.PongMessage{Type: domain.EventPong}))

	r.Equal([]string{
		`{"type":"streamEnded","streamId":"s9"}`,
		`{"type":"pong"}`,
	}, drain(a))
	r.Equal([]string{
		`{"type":"streamEnded","streamId":"s9"}`,
		`{"type":"viewerJoined","streamId":"s1","count":1}`,
	}, drain(b))

	r.False(h.SendToClient("unknown", []byte("x")))
}

func TestSlowClientIsEvicted(t *testing.T) {
	r := require.New(t)
	h := newTestHub(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	slow := register(h, "slow")
	h.BroadcastAll([]byte("1"))
	h.BroadcastAll([]byte("2"))

	r.Eventually(func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return slow.closed
	}, time.Second, 5*time.Millisecond)

	// still registered until its pumps run the disconnect path
	r.Equal(1, h.ClientCount())
	h.BroadcastAll([]byte("3"))
	r.Equal([]string{"1"}, drain(slow))
}

func TestShutdownClosesClients(t *testing.T) {
	r := require.New(t)
	h := newTestHub(4)

	a := register(h, "alice")
	h.Shutdown()
	h.Shutdown()

	_, ok := <-a.Send
	r.False(ok)
	r.NotPanics(func() { h.SendToClient(a.ID, []byte("late")) })
}
