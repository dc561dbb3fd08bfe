package ports

import "context"

// AuthSession is the auth provider's view of the current user
type AuthSession struct {
	IsLoaded bool
	UserID   string
}

// Authenticated reports whether a user identity is present
func (s AuthSession) Authenticated() bool {
	return s.IsLoaded && s.UserID != ""
}

// AuthProvider exposes sign-in and the current session
type AuthProvider interface {
	Session(ctx context.Context) (AuthSession, error)
	SignIn(ctx context.Context) error
}
