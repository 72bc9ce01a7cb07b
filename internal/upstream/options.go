package upstream

import (
	"context"
	"net/http"

	"github.com/stacktrack/stacktrack/internal/domain"
)

// GetOptionCatalog fetches the enumerated ticket attribute sets.
func (c *Client) GetOptionCatalog(ctx context.Context, token string) (*domain.OptionCatalog, error) {
	var resp struct {
		Data domain.OptionCatalog `json:"data"`
	}
	if err := c.do(ctx, "options.catalog", http.MethodGet, "/ticket-options", token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
