package service

import (
	"context"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/upstream"
)

// ClientService relays client record operations to the upstream API.
type ClientService struct {
	api ClientAPI
}

// NewClientService constructs the service.
func NewClientService(api ClientAPI) *ClientService {
	return &ClientService{api: api}
}

// List returns clients matching the query.
func (s *ClientService) List(ctx context.Context, token string, query upstream.ClientQuery) ([]domain.Client, error) {
	return s.api.ListClients(ctx, token, query)
}

// Get returns one client.
func (s *ClientService) Get(ctx context.Context, token, id string) (*domain.Client, error) {
	return s.api.GetClient(ctx, token, id)
}

// Create relays client creation.
func (s *ClientService) Create(ctx context.Context, token string, input upstream.ClientInput) (*domain.Client, error) {
	return s.api.CreateClient(ctx, token, input)
}

// Update relays a client update.
func (s *ClientService) Update(ctx context.Context, token, id string, input upstream.ClientInput) (*domain.Client, error) {
	return s.api.UpdateClient(ctx, token, id, input)
}

// Delete relays a client deletion.
func (s *ClientService) Delete(ctx context.Context, token, id string) error {
	return s.api.DeleteClient(ctx, token, id)
}
