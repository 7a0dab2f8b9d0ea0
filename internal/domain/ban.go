package domain

// DefaultBanReason is recorded when an admin bans without giving a reason.
const DefaultBanReason = "No Reason"

// Ban marks a participant as excluded from the event. The presence of a Ban
// record is the source of truth; Participant.IsBanned is a denormalized
// mirror written in the same transaction.
type Ban struct {
	ID            int64  `json:"-"`
	UserSnowflake string `json:"user_snowflake"`
	Reason        string `json:"reason"`
}
