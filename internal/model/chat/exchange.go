package chat

import "time"

// Exchange is one user turn and the reply it produced.
type Exchange struct {
	ID        string    `json:"-"`
	SessionID string    `json:"-"`
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	Intent    string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
