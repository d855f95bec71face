package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// AccessTokenFromContext returns the bearer token of the request session.
func AccessTokenFromContext(ctx context.Context) string {
	return SessionFromContext(ctx).AccessToken()
}

// CurrentUserFromContext returns the signed-in user of the request session.
func CurrentUserFromContext(ctx context.Context) *CurrentUser {
	return SessionFromContext(ctx).CurrentUser()
}
