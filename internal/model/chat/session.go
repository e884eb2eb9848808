package chat

import "time"

// DefaultSessionID names the shared history used when a caller supplies no session.
const DefaultSessionID = "default"

// Session captures a transient anonymous conversation.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
