package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/history"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/registry"
	"github.com/weiawesome/stream-service/internal/session"
	"github.com/weiawesome/stream-service/internal/store"
)

type frame map[string]interface{}

type fixture struct {
	mr   *miniredis.Miniredis
	hub  *hub.Hub
	reg  *registry.Registry
	ring *history.Ring
	mgr  *session.Manager
	d    *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	gw := store.NewRedisGatewayFromClient(client, store.RetryPolicy{MaxAttempts: 1})
	t.Cleanup(func() { gw.Close() })

	h := hub.NewHub(config.WebSocketConfig{SendBuffer: 64})
	reg := registry.New(gw)
	ring := history.NewRing(gw, 20)
	mgr := session.NewManager(h, reg, nil)

	bus := events.NewBus()
	bus.SubscribeAll(h.Deliver)

	d := New(reg, ring, mgr, bus)
	var tick int64
	d.now = func() time.Time {
		tick++
		return time.UnixMilli(1700000000000 + tick)
	}
	d.newID = func() string { return "generated" }

	return &fixture{mr: mr, hub: h, reg: reg, ring: ring, mgr: mgr, d: d}
}

func (f *fixture) connect(t *testing.T, participantID string) *hub.Client {
	t.Helper()
	c, err := f.mgr.Connect(context.Background(), participantID, nil)
	require.NoError(t, err)
	return c
}

func (f *fixture) start(t *testing.T, c *hub.Client, id string) {
	t.Helper()
	require.NoError(t, f.d.StartStream(context.Background(), c, domain.StartStreamMessage{
		Type:   domain.ActionStartStream,
		Stream: domain.Room{ID: id, Title: "Launch", Ticker: "LCH"},
	}))
}

func (f *fixture) viewers(t *testing.T, id string) int {
	t.Helper()
	room, err := f.reg.GetRoom(context.Background(), id)
	require.NoError(t, err)
	return room.Viewers
}

func frames(t *testing.T, c *hub.Client) []frame {
	t.Helper()
	var out []frame
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				return out
			}
			var fr frame
			require.NoError(t, json.Unmarshal(data, &fr))
			out = append(out, fr)
		default:
			return out
		}
	}
}

func ofType(frs []frame, typ domain.EventType) []frame {
	var out []frame
	for _, fr := range frs {
		if fr["type"] == string(typ) {
			out = append(out, fr)
		}
	}
	return out
}

func TestStartStreamFillsDefaults(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	alice := f.connect(t, "alice")
	bob := f.connect(t, "bob")

	r.NoError(f.d.StartStream(context.Background(), alice, domain.StartStreamMessage{
		Stream: domain.Room{Title: "Launch", Viewers: 99},
	}))

	room, err := f.reg.GetRoom(context.Background(), "generated")
	r.NoError(err)
	r.Equal("alice", room.Creator)
	r.Equal(domain.DefaultMarketCap, room.MarketCap)
	r.Equal(domain.DefaultThumbnail, room.Thumbnail)
	r.Equal(0, room.Viewers)
	r.NotEmpty(room.CreatedAt)

	for _, c := range []*hub.Client{alice, bob} {
		started := ofType(frames(t, c), domain.EventStreamStarted)
		r.Len(started, 1)
		r.Equal("generated", started[0]["stream"].(map[string]interface{})["id"])
	}
}

func TestStartStreamForeignCreatorRejected(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	mallory := f.connect(t, "mallory")

	err := f.d.StartStream(context.Background(), mallory, domain.StartStreamMessage{
		Stream: domain.Room{ID: "s1", Creator: "alice"},
	})
	r.ErrorIs(err, domain.ErrUnauthorized)

	_, err = f.reg.GetRoom(context.Background(), "s1")
	r.ErrorIs(err, domain.ErrNotFound)
}

func TestStartStreamDuplicate(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	alice := f.connect(t, "alice")
	f.start(t, alice, "s1")

	err := f.d.StartStream(context.Background(), alice, domain.StartStreamMessage{Stream: domain.Room{ID: "s1"}})
	r.ErrorIs(err, domain.ErrRoomExists)
}

func TestNonCreatorCannotEnd(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	alice := f.connect(t, "alice")
	bob := f.connect(t, "bob")
	f.start(t, alice, "s1")
	r.NoError(f.d.SendChatMessage(ctx, bob, domain.ChatSendMessage{StreamID: "s1", Content: "hi"}))
	frames(t, bob)

	err := f.d.EndStream(ctx, bob, "s1")
	r.ErrorIs(err, domain.ErrUnauthorized)

	f.d.Reject(ctx, bob.ID, err)
	errs := ofType(frames(t, bob), domain.EventError)
	r.Len(errs, 1)
	r.Equal("Unauthorized", errs[0]["message"])
	r.Equal(float64(403), errs[0]["statusCode"])

	room, err := f.reg.GetRoom(ctx, "s1")
	r.NoError(err)
	r.Equal("alice", room.Creator)
	msgs, err := f.ring.List(ctx, "s1")
	r.NoError(err)
	r.Len(msgs, 1)

	r.ErrorIs(f.d.UpdateLiveStatus(ctx, bob, "s1", true), domain.ErrUnauthorized)
}

func TestEndMissingStream(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	alice := f.connect(t, "alice")

	r.ErrorIs(f.d.EndStream(context.Background(), alice, "nope"), domain.ErrNotFound)
	r.ErrorIs(f.d.UpdateLiveStatus(context.Background(), alice, "nope", true), domain.ErrNotFound)
}

func TestCreatorJoinForbidden(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	alice := f.connect(t, "alice")
	f.start(t, alice, "s1")
	frames(t, alice)

	err := f.d.JoinStream(ctx, alice, "s1")
	r.ErrorIs(err, domain.ErrForbidden)
	f.d.Reject(ctx, alice.ID, err)

	out := frames(t, alice)
	r.Len(out, 1)
	r.Equal(string(domain.EventError), out[0]["type"])
	r.Equal(float64(403), out[0]["statusCode"])
	r.Equal(0, f.hub.RoomSize("s1"))
	r.Equal(0, f.viewers(t, "s1"))
}

func TestRoomScenario(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	a := f.connect(t, "A")
	b := f.connect(t, "B")
	c := f.connect(t, "C")
	f.start(t, a, "R1")
	for _, cl := range []*hub.Client{a, b, c} {
		frames(t, cl)
	}

	r.NoError(f.d.JoinStream(ctx, b, "R1"))
	r.Equal(1, f.viewers(t, "R1"))

	out := frames(t, b)
	joined := ofType(out, domain.EventViewerJoined)
	r.Len(joined, 1)
	r.Equal("R1", joined[0]["streamId"])
	r.Equal(float64(1), joined[0]["count"])
	roles := ofType(out, domain.EventRoleChanged)
	r.Len(roles, 1)
	r.Equal("audience", roles[0]["role"])
	r.Empty(frames(t, c))

	r.NoError(f.d.JoinStream(ctx, c, "R1"))
	r.Equal(2, f.viewers(t, "R1"))
	joined = ofType(frames(t, b), domain.EventViewerJoined)
	r.Len(joined, 1)
	r.Equal(float64(2), joined[0]["count"])
	frames(t, c)

	r.NoError(f.d.LeaveStream(ctx, b, "R1"))
	r.Equal(1, f.viewers(t, "R1"))
	left := ofType(frames(t, c), domain.EventViewerLeft)
	r.Len(left, 1)
	r.Equal(float64(1), left[0]["count"])
	roles = ofType(frames(t, b), domain.EventRoleChanged)
	r.Len(roles, 1)
	r.Nil(roles[0]["role"])

	r.NoError(f.d.SendChatMessage(ctx, c, domain.ChatSendMessage{StreamID: "R1", Content: "gm", Username: "carol"}))
	for _, cl := range []*hub.Client{a, b, c} {
		chat := ofType(frames(t, cl), domain.EventChatMessage)
		r.Len(chat, 1)
		r.Equal("carol", chat[0]["message"].(map[string]interface{})["username"])
	}

	r.NoError(f.d.UpdateLiveStatus(ctx, a, "R1", true))
	for _, cl := range []*hub.Client{a, b, c} {
		live := ofType(frames(t, cl), domain.EventLiveStatusChanged)
		r.Len(live, 1)
		r.Equal(true, live[0]["isLive"])
	}
	room, err := f.reg.GetRoom(ctx, "R1")
	r.NoError(err)
	r.True(room.IsLive)
	r.Equal(1, room.Viewers)

	r.NoError(f.d.EndStream(ctx, a, "R1"))
	for _, cl := range []*hub.Client{a, b, c} {
		r.Len(ofType(frames(t, cl), domain.EventStreamEnded), 1)
	}
	_, err = f.reg.GetRoom(ctx, "R1")
	r.ErrorIs(err, domain.ErrNotFound)
	r.False(f.mr.Exists(store.MessagesKey("R1")))
	meta, err := f.reg.Metadata(ctx, "R1")
	r.NoError(err)
	r.Nil(meta)
	r.False(f.hub.InRoom(c.ID, "R1"))

	r.NoError(f.d.RequestChatHistory(ctx, c, "R1"))
	hist := ofType(frames(t, c), domain.EventChatHistory)
	r.Len(hist, 1)
	r.Equal([]interface{}{}, hist[0]["messages"])
}

func TestChatHistoryNewestFirst(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	a := f.connect(t, "A")
	f.start(t, a, "R1")

	for i := 1; i <= 25; i++ {
		r.NoError(f.d.SendChatMessage(ctx, a, domain.ChatSendMessage{StreamID: "R1", Content: fmt.Sprintf("m%d", i)}))
	}
	frames(t, a)

	r.NoError(f.d.RequestChatHistory(ctx, a, "R1"))
	hist := ofType(frames(t, a), domain.EventChatHistory)
	r.Len(hist, 1)
	msgs := hist[0]["messages"].([]interface{})
	r.Len(msgs, 20)
	r.Equal("m25", msgs[0].(map[string]interface{})["content"])
	r.Equal("m6", msgs[19].(map[string]interface{})["content"])
	r.Equal("A", msgs[0].(map[string]interface{})["username"])
}

func TestSendChatMessageValidation(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	a := f.connect(t, "A")

	r.ErrorIs(f.d.SendChatMessage(ctx, a, domain.ChatSendMessage{StreamID: "R1", Content: "hi"}), domain.ErrNotFound)
	r.ErrorIs(f.d.SendChatMessage(ctx, a, domain.ChatSendMessage{StreamID: "R1", Content: "  "}), domain.ErrBadRequest)
	r.ErrorIs(f.d.SendChatMessage(ctx, a, domain.ChatSendMessage{Content: "hi"}), domain.ErrBadRequest)
	r.False(f.mr.Exists(store.MessagesKey("R1")))
}

func TestDisconnectBroadcastsViewerLeft(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	a := f.connect(t, "A")
	b := f.connect(t, "B")
	c := f.connect(t, "C")
	f.start(t, a, "R1")
	f.start(t, a, "R2")
	r.NoError(f.d.JoinStream(ctx, b, "R1"))
	r.NoError(f.d.JoinStream(ctx, b, "R2"))
	r.NoError(f.d.JoinStream(ctx, c, "R1"))
	frames(t, c)

	f.d.Disconnect(ctx, b)

	left := ofType(frames(t, c), domain.EventViewerLeft)
	r.Len(left, 1)
	r.Equal("R1", left[0]["streamId"])
	r.Equal(float64(1), left[0]["count"])
	r.Equal(1, f.viewers(t, "R1"))
	r.Equal(0, f.viewers(t, "R2"))
}

func TestPong(t *testing.T) {
	r := require.New(t)
	f := newFixture(t)
	a := f.connect(t, "A")

	f.d.Pong(context.Background(), a)
	out := frames(t, a)
	r.Len(out, 1)
	r.Equal("pong", out[0]["type"])
}
