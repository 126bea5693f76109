package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/dispatcher"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/internal/hub"
	"github.com/weiawesome/stream-service/internal/session"
	pkglog "github.com/weiawesome/stream-service/pkg/log"
	"github.com/weiawesome/stream-service/pkg/middleware"
)

// WSHandler handles WebSocket connections.
type WSHandler struct {
	sessions   *session.Manager
	dispatcher *dispatcher.Dispatcher
	upgrader   websocket.Upgrader
	writeWait  time.Duration
}

// NewWSHandler creates a new WebSocket handler. allowedOrigins is a comma
// separated list; empty or "*" accepts any origin.
func NewWSHandler(sessions *session.Manager, d *dispatcher.Dispatcher, cfg config.WebSocketConfig, allowedOrigins string) *WSHandler {
	return &WSHandler{
		sessions:   sessions,
		dispatcher: d,
		writeWait:  cfg.WriteWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed string) func(*http.Request) bool {
	origins := make(map[string]struct{})
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins[strings.ToLower(o)] = struct{}{}
		}
	}
	_, allowAll := origins["*"]

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowAll || len(origins) == 0 {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		_, ok := origins[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}

// HandleWebSocket upgrades the request and starts the connection pumps.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	l := pkglog.Ctx(c.Request.Context())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	participantID, err := middleware.GetParticipantID(c)
	if err != nil {
		h.refuse(conn, err)
		return
	}

	client, err := h.sessions.Connect(c.Request.Context(), participantID, conn)
	if err != nil {
		h.refuse(conn, err)
		return
	}

	// The request context ends with this handler; the connection outlives it.
	ctx := pkglog.WithConnection(context.WithoutCancel(c.Request.Context()), client.ID, client.ParticipantID)
	cl := pkglog.Ctx(ctx)
	cl.Info().Msg("client connected")

	client.SetDisconnectHandler(func(c *hub.Client) {
		h.dispatcher.Disconnect(ctx, c)
		cl.Info().Msg("client disconnected")
	})

	go client.WritePump()
	go client.ReadPump(func(c *hub.Client, message []byte) {
		h.handleMessage(ctx, c, message)
	})
}

// refuse reports a rejected handshake on the socket and closes it.
func (h *WSHandler) refuse(conn *websocket.Conn, err error) {
	msg := domain.NewErrorMessage("User ID required", http.StatusBadRequest)
	var de *domain.Error
	if errors.As(err, &de) {
		msg.Message = de.Message
		if errors.Is(err, domain.ErrUnauthorized) {
			msg.StatusCode = http.StatusForbidden
		}
	}

	conn.SetWriteDeadline(time.Now().Add(h.writeWait))
	conn.WriteJSON(msg)
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg.Message))
	conn.Close()
}

func (h *WSHandler) handleMessage(ctx context.Context, client *hub.Client, message []byte) {
	action, err := domain.DecodeAction(message)
	if err != nil {
		h.dispatcher.Reject(ctx, client.ID, err)
		return
	}

	ctx = pkglog.WithAction(ctx, string(action))
	if err := h.dispatch(ctx, client, action, message); err != nil {
		h.dispatcher.Reject(ctx, client.ID, err)
	}
}

func (h *WSHandler) dispatch(ctx context.Context, client *hub.Client, action domain.ActionType, message []byte) error {
	switch action {
	case domain.ActionStartStream:
		var msg domain.StartStreamMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.StartStream(ctx, client, msg)

	case domain.ActionEndStream:
		var msg domain.StreamIDMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.EndStream(ctx, client, msg.StreamID)

	case domain.ActionUpdateLiveStatus:
		var msg domain.LiveStatusMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.UpdateLiveStatus(ctx, client, msg.StreamID, msg.IsLive)

	case domain.ActionJoinStream:
		var msg domain.StreamIDMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.JoinStream(ctx, client, msg.StreamID)

	case domain.ActionLeaveStream:
		var msg domain.StreamIDMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.LeaveStream(ctx, client, msg.StreamID)

	case domain.ActionSendChatMessage:
		var msg domain.ChatSendMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.SendChatMessage(ctx, client, msg)

	case domain.ActionRequestHistory:
		var msg domain.StreamIDMessage
		if err := decode(message, &msg); err != nil {
			return err
		}
		return h.dispatcher.RequestChatHistory(ctx, client, msg.StreamID)

	case domain.ActionPing:
		h.dispatcher.Pong(ctx, client)
	}
	return nil
}

func decode(message []byte, v interface{}) error {
	if err := json.Unmarshal(message, v); err != nil {
		return domain.Errorf(domain.ErrBadRequest, "Invalid message payload")
	}
	return nil
}
