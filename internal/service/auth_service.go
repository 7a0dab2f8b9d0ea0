package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/skrapbuk/skrapbuk/internal/discord"
)

// OAuthProvider is the slice of the Discord client the auth flow needs.
type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchIdentity(accessToken string) (*discord.Identity, error)
}

type AuthService struct {
	provider  OAuthProvider
	jwtSecret []byte
}

func NewAuthService(provider OAuthProvider, jwtSecret string) *AuthService {
	return &AuthService{
		provider:  provider,
		jwtSecret: []byte(jwtSecret),
	}
}

// LoginURL returns the Discord authorize redirect for the given CSRF state.
func (s *AuthService) LoginURL(state string) string {
	return s.provider.AuthURL(state)
}

// HandleCallback exchanges the authorization code, resolves the identity
// behind it, and mints a session token. The Discord access token rides along
// in the claims so later requests can re-derive guild membership.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	accessToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	identity, err := s.provider.FetchIdentity(accessToken)
	if err != nil {
		return "", err
	}

	return s.generateToken(identity, accessToken)
}

func (s *AuthService) generateToken(identity *discord.Identity, accessToken string) (string, error) {
	claims := jwt.MapClaims{
		"sub":    identity.Snowflake,
		"name":   identity.Username,
		"avatar": identity.AvatarURL,
		"dtk":    accessToken,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
