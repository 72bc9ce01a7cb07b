package upstream

import (
	"context"
	"net/http"

	"github.com/stacktrack/stacktrack/internal/domain"
)

// Me fetches the user the session token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var resp struct {
		Data domain.User `json:"data"`
	}
	if err := c.do(ctx, "auth.me", http.MethodGet, "/auth/me", token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout invalidates the session token upstream.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "auth.logout", http.MethodPost, "/auth/logout", token, nil, nil, nil)
}
