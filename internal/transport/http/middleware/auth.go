package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to a request. The Discord
// access token rides along so downstream checks can re-derive guild
// membership.
type Principal struct {
	Snowflake   string
	Username    string
	AvatarURL   string
	AccessToken string
}

var errInvalidToken = errors.New("invalid session token")

// BearerToken pulls the session token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// ParsePrincipal validates a session token and unpacks the identity claims.
func ParsePrincipal(tokenStr string, jwtSecret []byte) (*Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errInvalidToken
	}

	p := &Principal{Snowflake: sub}
	if name, ok := claims["name"].(string); ok {
		p.Username = name
	}
	if avatar, ok := claims["avatar"].(string); ok {
		p.AvatarURL = avatar
	}
	if accessToken, ok := claims["dtk"].(string); ok {
		p.AccessToken = accessToken
	}
	return p, nil
}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated identity from request context.
func GetPrincipal(ctx context.Context) *Principal {
	return ctx.Value(principalKey).(*Principal)
}
