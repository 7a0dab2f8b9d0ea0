// Package discord wraps the identity provider: the OAuth2 authorization-code
// flow and the two REST lookups the backend needs (the authed user and their
// guild list).
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/oauth2"
)

// Endpoint is Discord's OAuth2 endpoint pair.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// Identity is the externally sourced profile of an authenticated user.
type Identity struct {
	Snowflake string
	Username  string
	AvatarURL string
}

type Client struct {
	oauth *oauth2.Config
}

func NewClient(clientID, clientSecret, redirectURL string) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify", "guilds"},
			Endpoint:     Endpoint,
		},
	}
}

// AuthURL builds the authorize redirect for the given CSRF state.
func (c *Client) AuthURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a bearer access token.
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchanging oauth code: %w", err)
	}
	return token.AccessToken, nil
}

// FetchIdentity looks up the authenticated user behind the access token.
func (c *Client) FetchIdentity(accessToken string) (*Identity, error) {
	session, err := bearerSession(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("fetching discord user: %w", err)
	}

	return &Identity{
		Snowflake: user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL("256"),
	}, nil
}

// InGuild reports whether the token's user is a member of the guild.
func (c *Client) InGuild(accessToken, guildID string) (bool, error) {
	session, err := bearerSession(accessToken)
	if err != nil {
		return false, err
	}

	guilds, err := session.UserGuilds(200, "", "", false)
	if err != nil {
		return false, fmt.Errorf("fetching discord guilds: %w", err)
	}

	for _, g := range guilds {
		if g.ID == guildID {
			return true, nil
		}
	}
	return false, nil
}

func bearerSession(accessToken string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bearer " + accessToken)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return session, nil
}
