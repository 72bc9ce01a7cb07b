package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stacktrack/stacktrack/internal/domain"
)

// ClientQuery captures client list filters.
type ClientQuery struct {
	Search   string
	Active   *bool
	Page     int
	PageSize int
}

func (q ClientQuery) values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Active != nil {
		values.Set("active", strconv.FormatBool(*q.Active))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return values
}

// ClientInput is the create/update payload for a client record.
type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

// ListClients fetches clients matching the query.
func (c *Client) ListClients(ctx context.Context, token string, query ClientQuery) ([]domain.Client, error) {
	var resp struct {
		Data []domain.Client `json:"data"`
	}
	if err := c.do(ctx, "clients.list", http.MethodGet, "/clients", token, query.values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetClient fetches one client by id.
func (c *Client) GetClient(ctx context.Context, token, id string) (*domain.Client, error) {
	var resp struct {
		Data domain.Client `json:"data"`
	}
	if err := c.do(ctx, "clients.get", http.MethodGet, "/clients/"+url.PathEscape(id), token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateClient creates a client upstream.
func (c *Client) CreateClient(ctx context.Context, token string, input ClientInput) (*domain.Client, error) {
	var resp struct {
		Data domain.Client `json:"data"`
	}
	if err := c.do(ctx, "clients.create", http.MethodPost, "/clients", token, nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateClient updates a client upstream.
func (c *Client) UpdateClient(ctx context.Context, token, id string, input ClientInput) (*domain.Client, error) {
	var resp struct {
		Data domain.Client `json:"data"`
	}
	if err := c.do(ctx, "clients.update", http.MethodPut, "/clients/"+url.PathEscape(id), token, nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteClient deletes a client upstream.
func (c *Client) DeleteClient(ctx context.Context, token, id string) error {
	return c.do(ctx, "clients.delete", http.MethodDelete, "/clients/"+url.PathEscape(id), token, nil, nil, nil)
}
