package domain

import "time"

// Participant is a joined event member, keyed by their Discord snowflake.
// InServer and IsAdmin are recomputed from the identity provider and the
// admin allow-list on every fetch; they are stored only as a convenience
// snapshot from join time.
type Participant struct {
	Snowflake string    `json:"snowflake"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	InServer  bool      `json:"in_server"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	Partner   *string   `json:"partner"`
	CreatedAt time.Time `json:"created_at"`
}
