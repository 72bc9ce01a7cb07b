package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/events"
	"github.com/stacktrack/stacktrack/internal/sla"
	"github.com/stacktrack/stacktrack/internal/upstream"
)

type fakeTicketAPI struct {
	tickets []domain.Ticket
	note    *domain.Note
}

func (f *fakeTicketAPI) ListTickets(ctx context.Context, token string, query upstream.TicketQuery) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, len(f.tickets))
	copy(out, f.tickets)
	return out, nil
}

func (f *fakeTicketAPI) GetTicket(ctx context.Context, token, id string) (*domain.Ticket, error) {
	ticket := f.tickets[0]
	return &ticket, nil
}

func (f *fakeTicketAPI) CreateTicket(ctx context.Context, token string, input upstream.TicketInput) (*domain.Ticket, error) {
	return &domain.Ticket{ID: "t-new", Subject: input.Subject, Status: "new", CreatedAt: "2024-01-01T12:00:00Z", ClientID: input.ClientID, Priority: input.Priority}, nil
}

func (f *fakeTicketAPI) UpdateTicket(ctx context.Context, token, id string, input upstream.TicketInput) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, Subject: input.Subject, Status: "new", CreatedAt: "2024-01-01T12:00:00Z"}, nil
}

func (f *fakeTicketAPI) DeleteTicket(ctx context.Context, token, id string) error {
	return nil
}

func (f *fakeTicketAPI) ChangeTicketStatus(ctx context.Context, token, id, status, comment string) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, Status: status, StatusUpdatedAt: "2024-01-01T12:00:00Z"}, nil
}

func (f *fakeTicketAPI) AssignTicket(ctx context.Context, token, id string, assigneeID *string) (*domain.Ticket, error) {
	return &domain.Ticket{ID: id, Status: "in_progress", AssigneeID: assigneeID, StatusUpdatedAt: "2024-01-01T12:00:00Z"}, nil
}

func (f *fakeTicketAPI) AddNote(ctx context.Context, token, id, body string, internal bool) (*domain.Note, error) {
	note := *f.note
	note.TicketID = id
	note.Body = body
	note.Internal = internal
	return &note, nil
}

func (f *fakeTicketAPI) ListNotes(ctx context.Context, token, id string) ([]domain.Note, error) {
	return []domain.Note{*f.note}, nil
}

func newTicketService(api TicketAPI, dispatcher events.Dispatcher) *TicketService {
	return NewTicketService(TicketDependencies{
		API:        api,
		Engine:     sla.NewEngine(sla.NewCalendar(time.UTC)),
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func TestListDecoratesTicketsWithDeadlines(t *testing.T) {
	api := &fakeTicketAPI{tickets: []domain.Ticket{
		{ID: "t-1", Status: "new", CreatedAt: "2024-01-01T12:00:00Z"},
		{ID: "t-2", Status: "In Progress", StatusUpdatedAt: "2024-01-01T08:00:00Z"},
		{ID: "t-3", Status: "closed", UpdatedAt: "2024-01-01T09:00:00Z"},
		{ID: "t-4", Status: "new"},
	}}
	svc := newTicketService(api, nil)

	tickets, err := svc.List(context.Background(), "tok", upstream.TicketQuery{})
	require.NoError(t, err)
	require.Len(t, tickets, 4)

	// new: created_at + 4 business hours.
	require.NotNil(t, tickets[0].NextActionDue)
	assert.Equal(t, time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC), tickets[0].NextActionDue.UTC())

	// in_progress: 72 business hours = 8 full days from Monday 08:00.
	require.NotNil(t, tickets[1].NextActionDue)
	assert.Equal(t, time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC), tickets[1].NextActionDue.UTC())

	// closed and timestamp-less tickets carry no deadline.
	assert.Nil(t, tickets[2].NextActionDue)
	assert.Nil(t, tickets[3].NextActionDue)
}

func TestCreatePublishesAuditEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var captured []events.Event
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})
	svc := newTicketService(&fakeTicketAPI{}, dispatcher)

	ticket, err := svc.Create(context.Background(), "tok", upstream.TicketInput{Subject: "vpn broken", ClientID: "c-1", Priority: "urgent"})
	require.NoError(t, err)

	require.Len(t, captured, 1)
	assert.Equal(t, ticket.ID, captured[0].TicketID)
	assert.NotEmpty(t, captured[0].ID)
	assert.False(t, captured[0].Timestamp.IsZero())
	payload, ok := captured[0].Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, "vpn broken", payload.Subject)
	assert.Equal(t, "c-1", payload.ClientID)
}

func TestChangeStatusRecomputesDeadline(t *testing.T) {
	svc := newTicketService(&fakeTicketAPI{}, nil)

	ticket, err := svc.ChangeStatus(context.Background(), "tok", "t-1", "in_progress", "picking this up")
	require.NoError(t, err)

	require.NotNil(t, ticket.NextActionDue)
	// Monday 12:00 + 72 business hours.
	assert.Equal(t, time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), ticket.NextActionDue.UTC())
}

func TestAddNotePublishesEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var captured []events.Event
	dispatcher.Subscribe(events.EventTicketNoteAdded, func(ctx context.Context, event events.Event) error {
		captured = append(captured, event)
		return nil
	})
	svc := newTicketService(&fakeTicketAPI{note: &domain.Note{ID: "n-1"}}, dispatcher)

	note, err := svc.AddNote(context.Background(), "tok", "t-1", "called the client", true)
	require.NoError(t, err)
	assert.True(t, note.Internal)

	require.Len(t, captured, 1)
	payload, ok := captured[0].Payload.(events.TicketNoteAddedPayload)
	require.True(t, ok)
	assert.Equal(t, "n-1", payload.NoteID)
	assert.True(t, payload.Internal)
}
