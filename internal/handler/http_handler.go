package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/pkg/log"
	"github.com/weiawesome/stream-service/pkg/response"
)

// RoomLister lists every room.
type RoomLister interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
}

// ConnectionCounter reports how many connections this instance holds.
type ConnectionCounter interface {
	ClientCount() int
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Connections int    `json:"connections"`
}

// Handler serves the HTTP query surface.
type Handler struct {
	rooms RoomLister
	conns ConnectionCounter
	sf    singleflight.Group
	now   func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(rooms RoomLister, conns ConnectionCounter) *Handler {
	return &Handler{rooms: rooms, conns: conns, now: time.Now}
}

// RegisterRoutes registers the query routes and the websocket endpoint.
// identify runs before the websocket upgrade.
func (h *Handler) RegisterRoutes(r *gin.Engine, ws *WSHandler, identify gin.HandlerFunc) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/streams", h.ListStreams)
	}

	if ws != nil {
		r.GET("/ws", identify, ws.HandleWebSocket)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	response.JSON(c, HealthResponse{
		Status:      "ok",
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Connections: h.conns.ClientCount(),
	})
}

// ListStreams returns every room. Concurrent requests share one read.
func (h *Handler) ListStreams(c *gin.Context) {
	ctx := c.Request.Context()

	v, err, _ := h.sf.Do("streams", func() (interface{}, error) {
		return h.rooms.ListRooms(context.WithoutCancel(ctx))
	})
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list streams")
		response.InternalError(c, "Internal server error")
		return
	}

	response.JSON(c, v.([]domain.Room))
}
