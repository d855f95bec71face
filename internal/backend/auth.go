package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/netline-isp/isp-console/internal/shared"
)

// LoginResult is the backend answer to POST /login.
type LoginResult struct {
	Token string             `json:"token"`
	User  shared.CurrentUser `json:"user"`
}

// Login exchanges credentials for a bearer token. Rejected credentials are
// reported as shared.ErrInvalidCredentials wrapping the backend error.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := c.send(ctx, http.MethodPost, "/login", nil, payload, "", &result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return nil, errors.Join(shared.ErrInvalidCredentials, err)
		}
		return nil, err
	}
	if result.Token == "" {
		return nil, shared.ErrInvalidCredentials
	}
	return &result, nil
}
