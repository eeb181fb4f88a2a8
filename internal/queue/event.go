// Package queue defines the auth audit events exchanged over the message
// broker and the background consumer that turns them into an audit log.
package queue

// Audit event types published by the session handlers.
const (
	EventUserRegistered = "user.registered"
	EventUserLogin      = "user.login"
	EventUserLogout     = "user.logout"
	EventTokenRefreshed = "token.refreshed"
)

// authQueueName is the durable queue carrying all auth audit events.
const authQueueName = "auth.events"

// AuthEvent records one authentication lifecycle action.  It carries enough
// context for downstream consumers to build an audit trail without querying
// the primary database.  It never contains credentials or token material.
type AuthEvent struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	IP     string `json:"ip"`
	At     string `json:"at"` // RFC 3339 UTC
}
