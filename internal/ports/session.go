package ports

import (
	"context"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

// SessionState is what survives between invocations within one session.
type SessionState struct {
	Settings  domain.Settings           // last committed settings
	Results   []domain.ConversionResult // results of the last finished job, for export
	UpdatedAt time.Time                 // when this state was last written
	ExpiresAt time.Time                 // when the session should be considered over
}

// SessionStore persists settings and results for the length of a session.
type SessionStore interface {
	// Load returns the current session, or domain.ErrSessionMiss /
	// domain.ErrSessionExpired when there is none.
	Load(ctx context.Context) (*SessionState, error)

	// Save writes the session and extends its expiry.
	Save(ctx context.Context, state *SessionState) error

	// Clear ends the session.
	Clear(ctx context.Context) error
}
