package service

import (
	"context"
	"time"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/upstream"
)

// TicketAPI is the slice of the upstream client ticket services consume.
type TicketAPI interface {
	ListTickets(ctx context.Context, token string, query upstream.TicketQuery) ([]domain.Ticket, error)
	GetTicket(ctx context.Context, token, id string) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, token string, input upstream.TicketInput) (*domain.Ticket, error)
	UpdateTicket(ctx context.Context, token, id string, input upstream.TicketInput) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, token, id string) error
	ChangeTicketStatus(ctx context.Context, token, id, status, comment string) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, token, id string, assigneeID *string) (*domain.Ticket, error)
	AddNote(ctx context.Context, token, id, body string, internal bool) (*domain.Note, error)
	ListNotes(ctx context.Context, token, id string) ([]domain.Note, error)
}

// ClientAPI is the upstream surface for client records.
type ClientAPI interface {
	ListClients(ctx context.Context, token string, query upstream.ClientQuery) ([]domain.Client, error)
	GetClient(ctx context.Context, token, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, token string, input upstream.ClientInput) (*domain.Client, error)
	UpdateClient(ctx context.Context, token, id string, input upstream.ClientInput) (*domain.Client, error)
	DeleteClient(ctx context.Context, token, id string) error
}

// OptionsAPI fetches the ticket option catalog.
type OptionsAPI interface {
	GetOptionCatalog(ctx context.Context, token string) (*domain.OptionCatalog, error)
}

// AuthAPI is the upstream session surface.
type AuthAPI interface {
	Me(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// OptionsCache stores the serialized option catalog with a TTL.
type OptionsCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
