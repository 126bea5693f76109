package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weiawesome/stream-service/pkg/log"
)

const (
	// ParticipantIDKey matches the request log field so the access log
	// carries the resolved identity.
	ParticipantIDKey = log.FieldParticipantID
	identityErrorKey = "identity_error"
)

// IdentityResolver extracts the caller's participant id from a request.
type IdentityResolver interface {
	Resolve(r *http.Request) (string, error)
}

// Identify resolves the caller before the handler runs. A failed
// resolution does not abort: websocket handlers report it over the
// upgraded connection.
func Identify(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		participantID, err := resolver.Resolve(c.Request)
		if err != nil {
			c.Set(identityErrorKey, err)
		} else {
			c.Set(ParticipantIDKey, participantID)
		}
		c.Next()
	}
}

// GetParticipantID returns the resolved participant id, or the resolution
// error.
func GetParticipantID(c *gin.Context) (string, error) {
	if v, ok := c.Get(identityErrorKey); ok {
		if err, ok := v.(error); ok {
			return "", err
		}
	}
	return c.GetString(ParticipantIDKey), nil
}
