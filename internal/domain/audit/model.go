package audit

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousSession is recorded when an action happens outside any session.
const AnonymousSession = "anonymous"

// Entry is an immutable record of a security-relevant action. Entries are
// append-only: produced anywhere, queued centrally, never read back.
type Entry struct {
	ID        string         `db:"id" json:"id"`
	Timestamp time.Time      `db:"recorded_at" json:"timestamp"`
	Action    string         `db:"action" json:"action"`
	SessionID string         `db:"session_id" json:"sessionId"`
	Data      map[string]any `db:"data" json:"data,omitempty"`
}

// NewEntry builds an entry stamped with the current time. An empty sessionID
// becomes AnonymousSession.
func NewEntry(action, sessionID string, data map[string]any) Entry {
	if sessionID == "" {
		sessionID = AnonymousSession
	}
	return Entry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		SessionID: sessionID,
		Data:      data,
	}
}
