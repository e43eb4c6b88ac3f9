package entitlement

import (
	"context"

	"github.com/google/uuid"
)

// Session carries the identity the gating system needs: who is asking
// and the credential to present to the billing backend. A nil or
// zero-ID session is anonymous and always resolves to the free tier.
type Session struct {
	UserID     uuid.UUID
	Credential string
	Email      string
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != uuid.Nil
}

type sessionCtxKey struct{}

// SetSessionToContext stores the session for downstream handlers.
func SetSessionToContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, s)
}

// GetSessionFromContext retrieves the session, if present.
func GetSessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return s, ok
}
