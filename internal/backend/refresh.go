package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/netline-isp/isp-console/internal/shared"
)

// SessionRefresher exchanges the session's token at a backend refresh
// endpoint and stores the replacement in the session.
type SessionRefresher struct {
	client *Client
	path   string
}

// NewSessionRefresher returns nil when path is empty, which leaves 401s to
// sign the user out.
func NewSessionRefresher(client *Client, path string) *SessionRefresher {
	if path == "" {
		return nil
	}
	return &SessionRefresher{client: client, path: path}
}

// Refresh implements Refresher.
func (r *SessionRefresher) Refresh(ctx context.Context) (string, error) {
	if r == nil {
		return "", errors.New("backend: token refresh not configured")
	}
	sess := shared.SessionFromContext(ctx)
	if !sess.Authenticated() {
		return "", errors.New("backend: refresh without a signed-in session")
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := r.client.send(ctx, http.MethodPost, r.path, nil, nil, sess.AccessToken(), &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("backend: refresh returned no token")
	}
	if !sess.ReplaceToken(out.Token) {
		return "", errors.New("backend: session signed out during refresh")
	}
	return out.Token, nil
}
