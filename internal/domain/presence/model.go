// Package presence tracks which accounts are online via heartbeats.
package presence

import "time"

// DefaultOnlineWindow is how recently a heartbeat must have arrived
// for an account to count as online.
const DefaultOnlineWindow = 90 * time.Second

// OnlineUser is one account's presence row.
type OnlineUser struct {
	UserID        int64     `db:"user_id" json:"userId"`
	Username      string    `db:"username" json:"username"`
	LastHeartbeat time.Time `db:"last_heartbeat" json:"lastHeartbeat"`

	// CurrentAction is a free-form activity label shown to other
	// users ("editing sales", etc.)
	CurrentAction *string `db:"current_action" json:"currentAction,omitempty"`
}

// IsOnline reports whether the heartbeat falls inside the window.
func (u *OnlineUser) IsOnline(now time.Time, window time.Duration) bool {
	return now.Sub(u.LastHeartbeat) <= window
}
