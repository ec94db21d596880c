package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session identifies one client installation for analytics.
// It is created once and passed explicitly to whatever records analytics.
type Session struct {
	ID string
}

// NewSession creates a session token of the form session_{unixMillis}_{9 chars}.
func NewSession(now time.Time) Session {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return Session{ID: fmt.Sprintf("session_%d_%s", now.UnixMilli(), suffix)}
}

// SessionFrom returns a session with the given id, or fallback when id is blank.
func SessionFrom(id string, fallback Session) Session {
	id = strings.TrimSpace(id)
	if id == "" {
		return fallback
	}
	return Session{ID: id}
}
