package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/stream-service/internal/auth"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/dispatcher"
	"github.com/weiawesome/stream-service/internal/events"
	"github.com/weiawesome/stream-service/internal/history"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/registry"
	"github.com/weiawesome/stream-service/internal/session"
	"github.com/weiawesome/stream-service/internal/store"
	"github.com/weiawesome/stream-service/pkg/middleware"
)

type wsFrame map[string]interface{}

func newTestServer(t *testing.T) (*httptest.Server, *registry.Registry) {
	t.Helper()
	mr := miniredis.RunT(t)
	gw := store.NewRedisGatewayFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), store.RetryPolicy{MaxAttempts: 1})
	t.Cleanup(func() { gw.Close() })

	wsCfg := config.WebSocketConfig{
		PingInterval:     time.Minute,
		PongWait:         time.Minute,
		WriteWait:        time.Second,
		HandshakeTimeout: time.Second,
		MaxMessageSize:   65536,
		SendBuffer:       64,
	}
	h := hub.NewHub(wsCfg)
	reg := registry.New(gw)
	mgr := session.NewManager(h, reg, nil)
	bus := events.NewBus()
	bus.SubscribeAll(h.Deliver)
	d := dispatcher.New(reg, history.NewRing(gw, 20), mgr, bus)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(reg, h).RegisterRoutes(router,
		NewWSHandler(mgr, d, wsCfg, "http://localhost:3000"),
		middleware.Identify(auth.QueryResolver{Param: "userId"}))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, reg
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// next reads frames until one of type typ arrives.
func next(t *testing.T, conn *websocket.Conn, typ string) wsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var fr wsFrame
		require.NoError(t, conn.ReadJSON(&fr))
		if fr["type"] == typ {
			return fr
		}
	}
}

func TestConnectWithoutUserIDIsRefused(t *testing.T) {
	r := require.New(t)
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "")

	fr := next(t, conn, "error")
	r.Equal("User ID required", fr["message"])
	r.Equal(float64(400), fr["statusCode"])

	_, _, err := conn.ReadMessage()
	r.Error(err)
}

func TestOriginNotAllowed(t *testing.T) {
	r := require.New(t)
	srv, _ := newTestServer(t)

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?userId=alice"
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	r.Error(err)
	r.Equal(http.StatusForbidden, resp.StatusCode)
}

func TestStreamLifecycleOverWebSocket(t *testing.T) {
	r := require.New(t)
	srv, reg := newTestServer(t)

	alice := dial(t, srv, "?userId=alice")
	bob := dial(t, srv, "?userId=bob")

	r.NoError(alice.WriteJSON(map[string]interface{}{"type": "ping"}))
	next(t, alice, "pong")

	r.NoError(alice.WriteJSON(map[string]interface{}{
		"type":   "startStream",
		"stream": map[string]interface{}{"id": "s1", "title": "Launch", "ticker": "LCH", "coinAddress": "0xabc"},
	}))
	started := next(t, bob, "streamStarted")
	r.Equal("s1", started["stream"].(map[string]interface{})["id"])
	r.Equal("alice", started["stream"].(map[string]interface{})["creator"])

	r.NoError(bob.WriteJSON(map[string]interface{}{"type": "joinStream", "streamId": "s1"}))
	joined := next(t, bob, "viewerJoined")
	r.Equal(float64(1), joined["count"])
	role := next(t, bob, "roleChanged")
	r.Equal("audience", role["role"])

	r.NoError(bob.WriteJSON(map[string]interface{}{"type": "endStream", "streamId": "s1"}))
	denied := next(t, bob, "error")
	r.Equal(float64(403), denied["statusCode"])

	r.NoError(bob.WriteJSON(map[string]interface{}{"type": "sendChatMessage", "streamId": "s1", "content": "gm", "username": "bobby"}))
	chat := next(t, alice, "chatMessageReceived")
	r.Equal("gm", chat["message"].(map[string]interface{})["content"])

	r.NoError(bob.WriteJSON(map[string]interface{}{"type": "requestChatHistory", "streamId": "s1"}))
	hist := next(t, bob, "chatHistoryReceived")
	r.Len(hist["messages"], 1)

	r.NoError(bob.WriteJSON(map[string]interface{}{"type": "dance"}))
	bad := next(t, bob, "error")
	r.Equal(float64(400), bad["statusCode"])

	// bob drops; the room count self-corrects
	bob.Close()
	r.Eventually(func() bool {
		room, err := reg.GetRoom(context.Background(), "s1")
		return err == nil && room.Viewers == 0
	}, 2*time.Second, 10*time.Millisecond)

	r.NoError(alice.WriteJSON(map[string]interface{}{"type": "endStream", "streamId": "s1"}))
	next(t, alice, "streamEnded")
}

func TestOriginChecker(t *testing.T) {
	r := require.New(t)

	check := originChecker("http://localhost:3000/, https://app.example.com")
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.True(check(req))

	req.Header.Set("Origin", "https://APP.example.com")
	r.True(check(req))
	req.Header.Set("Origin", "http://localhost:3000")
	r.True(check(req))
	req.Header.Set("Origin", "http://localhost:4000")
	r.False(check(req))

	r.True(originChecker("*")(req))
	r.True(originChecker("")(req))
}
