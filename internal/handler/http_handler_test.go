package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/pkg/response"
)

type stubLister struct {
	rooms []domain.Room
	err   error
}

func (s stubLister) ListRooms(context.Context) ([]domain.Room, error) {
	return s.rooms, s.err
}

type stubCounter int

func (s stubCounter) ClientCount() int { return int(s) }

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r, nil, nil)
	return r
}

func TestHealth(t *testing.T) {
	r := require.New(t)
	h := NewHandler(stubLister{}, stubCounter(3))
	h.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	r.Equal(http.StatusOK, w.Code)
	r.JSONEq(`{"status":"ok","timestamp":"2024-01-02T03:04:05Z","connections":3}`, w.Body.String())
}

func TestListStreams(t *testing.T) {
	r := require.New(t)
	h := NewHandler(stubLister{rooms: []domain.Room{{ID: "s1", Creator: "alice", MarketCap: "0"}}}, stubCounter(0))

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/streams", nil))

	r.Equal(http.StatusOK, w.Code)
	var rooms []domain.Room
	r.NoError(json.Unmarshal(w.Body.Bytes(), &rooms))
	r.Len(rooms, 1)
	r.Equal("alice", rooms[0].Creator)
}

func TestListStreamsEmptyIsArray(t *testing.T) {
	r := require.New(t)
	h := NewHandler(stubLister{rooms: []domain.Room{}}, stubCounter(0))

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/streams", nil))

	r.Equal(http.StatusOK, w.Code)
	r.Equal("[]", w.Body.String())
}

func TestListStreamsFailure(t *testing.T) {
	r := require.New(t)
	h := NewHandler(stubLister{err: errors.New("redis down")}, stubCounter(0))

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/streams", nil))

	r.Equal(http.StatusInternalServerError, w.Code)
	var body response.ErrorBody
	r.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	r.Equal("Internal server error", body.Error)
	r.Equal(http.StatusInternalServerError, body.StatusCode)
}
