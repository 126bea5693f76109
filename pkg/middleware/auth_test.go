package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(*http.Request) (string, error)

func (f resolverFunc) Resolve(r *http.Request) (string, error) { return f(r) }

func TestIdentify(t *testing.T) {
	r := require.New(t)
	gin.SetMode(gin.TestMode)

	var gotID string
	var gotErr error
	router := gin.New()
	router.GET("/ws", Identify(resolverFunc(func(req *http.Request) (string, error) {
		if id := req.URL.Query().Get("userId"); id != "" {
			return id, nil
		}
		return "", errors.New("no identity")
	})), func(c *gin.Context) {
		gotID, gotErr = GetParticipantID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ws?userId=alice", nil))
	r.Equal(http.StatusNoContent, w.Code)
	r.NoError(gotErr)
	r.Equal("alice", gotID)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	r.Equal(http.StatusNoContent, w.Code)
	r.EqualError(gotErr, "no identity")
	r.Empty(gotID)
}
