package models

import "time"

// Session is the browser's persisted sign-in: the backend bearer token and
// the user it belongs to.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"` // never rendered
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
