package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/pkg/jwt"
	"github.com/weiawesome/stream-service/pkg/middleware"
)

const bearerPrefix = "Bearer "

// QueryResolver trusts the participant id passed as a query parameter.
type QueryResolver struct {
	Param string
}

// Resolve returns the query parameter value. An empty id is reported by
// the session layer.
func (q QueryResolver) Resolve(r *http.Request) (string, error) {
	return strings.TrimSpace(r.URL.Query().Get(q.Param)), nil
}

// TokenResolver reads a signed token from a query parameter or the
// Authorization header.
type TokenResolver struct {
	Param    string
	Verifier *jwt.Manager
}

// Resolve validates the token and returns its identity.
func (t TokenResolver) Resolve(r *http.Request) (string, error) {
	token := r.URL.Query().Get(t.Param)
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), bearerPrefix)
	}
	if token == "" {
		return "", nil
	}

	claims, err := t.Verifier.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return "", domain.Errorf(domain.ErrUnauthorized, "Token expired")
		}
		return "", domain.Errorf(domain.ErrUnauthorized, "Invalid token")
	}
	return claims.Identity(), nil
}

// NewResolver picks the token resolver when a secret is configured and
// the query resolver otherwise.
func NewResolver(cfg config.AuthConfig) (middleware.IdentityResolver, error) {
	if cfg.JWTSecret == "" {
		return QueryResolver{Param: cfg.UserParam}, nil
	}

	verifier, err := jwt.NewManager(cfg.JWTSecret, 0, "")
	if err != nil {
		return nil, err
	}
	return TokenResolver{Param: cfg.TokenParam, Verifier: verifier}, nil
}
