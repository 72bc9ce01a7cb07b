package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/events"
	"github.com/stacktrack/stacktrack/internal/observability"
	"github.com/stacktrack/stacktrack/internal/sla"
	"github.com/stacktrack/stacktrack/internal/upstream"
)

// TicketService relays ticket operations to the upstream API and
// decorates every returned ticket with its computed next-action-due
// deadline.
type TicketService struct {
	api        TicketAPI
	options    *OptionsService
	engine     sla.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	API        TicketAPI
	Options    *OptionsService
	Engine     sla.Engine
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		api:        deps.API,
		options:    deps.Options,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// List returns tickets matching the query, each with a deadline.
func (s *TicketService) List(ctx context.Context, token string, query upstream.TicketQuery) ([]domain.Ticket, error) {
	tickets, err := s.api.ListTickets(ctx, token, query)
	if err != nil {
		return nil, err
	}
	overrides := s.overrides(ctx, token)
	for i := range tickets {
		s.decorate(&tickets[i], overrides)
	}
	return tickets, nil
}

// Get returns one ticket with its deadline.
func (s *TicketService) Get(ctx context.Context, token, id string) (*domain.Ticket, error) {
	ticket, err := s.api.GetTicket(ctx, token, id)
	if err != nil {
		return nil, err
	}
	s.decorate(ticket, s.overrides(ctx, token))
	return ticket, nil
}

// Create relays ticket creation and publishes an audit event.
func (s *TicketService) Create(ctx context.Context, token string, input upstream.TicketInput) (*domain.Ticket, error) {
	ticket, err := s.api.CreateTicket(ctx, token, input)
	if err != nil {
		return nil, err
	}
	s.decorate(ticket, s.overrides(ctx, token))
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			ClientID: ticket.ClientID,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// Update relays a ticket update.
func (s *TicketService) Update(ctx context.Context, token, id string, input upstream.TicketInput) (*domain.Ticket, error) {
	ticket, err := s.api.UpdateTicket(ctx, token, id, input)
	if err != nil {
		return nil, err
	}
	s.decorate(ticket, s.overrides(ctx, token))
	s.publish(ctx, events.Event{Type: events.EventTicketUpdated, TicketID: ticket.ID})
	return ticket, nil
}

// Delete relays a ticket deletion.
func (s *TicketService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.DeleteTicket(ctx, token, id); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventTicketDeleted, TicketID: id})
	return nil
}

// ChangeStatus relays a status change; the upstream stamps
// status_updated_at so the returned deadline reflects the new status.
func (s *TicketService) ChangeStatus(ctx context.Context, token, id, status, comment string) (*domain.Ticket, error) {
	ticket, err := s.api.ChangeTicketStatus(ctx, token, id, status, comment)
	if err != nil {
		return nil, err
	}
	s.decorate(ticket, s.overrides(ctx, token))
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			NewStatus: ticket.Status,
			Comment:   comment,
		},
	})
	return ticket, nil
}

// Assign relays assignment (assigneeID nil clears the assignee).
func (s *TicketService) Assign(ctx context.Context, token, id string, assigneeID *string) (*domain.Ticket, error) {
	ticket, err := s.api.AssignTicket(ctx, token, id, assigneeID)
	if err != nil {
		return nil, err
	}
	s.decorate(ticket, s.overrides(ctx, token))
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload:  events.TicketAssignedPayload{AssigneeID: assigneeID},
	})
	return ticket, nil
}

// AddNote relays note creation.
func (s *TicketService) AddNote(ctx context.Context, token, id, body string, internal bool) (*domain.Note, error) {
	note, err := s.api.AddNote(ctx, token, id, body, internal)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketNoteAdded,
		TicketID: id,
		Payload:  events.TicketNoteAddedPayload{NoteID: note.ID, Internal: note.Internal},
	})
	return note, nil
}

// ListNotes relays note listing.
func (s *TicketService) ListNotes(ctx context.Context, token, id string) ([]domain.Note, error) {
	return s.api.ListNotes(ctx, token, id)
}

func (s *TicketService) overrides(ctx context.Context, token string) sla.Overrides {
	if s.options == nil {
		return nil
	}
	return s.options.Overrides(ctx, token)
}

func (s *TicketService) decorate(ticket *domain.Ticket, overrides sla.Overrides) {
	if ticket == nil {
		return
	}
	due, ok := s.engine.NextActionDue(sla.TicketRef{
		Status:          ticket.Status,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
		StatusUpdatedAt: ticket.StatusUpdatedAt,
	}, overrides)
	if !ok {
		ticket.NextActionDue = nil
		s.metrics.RecordDeadline("none")
		return
	}
	ticket.NextActionDue = &due
	s.metrics.RecordDeadline("computed")
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
