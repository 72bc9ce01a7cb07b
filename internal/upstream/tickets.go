package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stacktrack/stacktrack/internal/domain"
)

// TicketQuery captures list filters forwarded to the upstream.
type TicketQuery struct {
	Statuses   []string
	Priorities []string
	ClientID   string
	AssigneeID string
	Search     string
	Page       int
	PageSize   int
}

func (q TicketQuery) values() url.Values {
	values := url.Values{}
	if len(q.Statuses) > 0 {
		values.Set("status", strings.Join(q.Statuses, ","))
	}
	if len(q.Priorities) > 0 {
		values.Set("priority", strings.Join(q.Priorities, ","))
	}
	if q.ClientID != "" {
		values.Set("client_id", q.ClientID)
	}
	if q.AssigneeID != "" {
		values.Set("assignee_id", q.AssigneeID)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	return values
}

// TicketInput is the create/update payload relayed upstream.
type TicketInput struct {
	Subject     string  `json:"subject"`
	Description string  `json:"description,omitempty"`
	ClientID    string  `json:"client_id,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Type        string  `json:"type,omitempty"`
	SupportType string  `json:"support_type,omitempty"`
	BillingType string  `json:"billing_type,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
}

// ListTickets fetches tickets matching the query.
func (c *Client) ListTickets(ctx context.Context, token string, query TicketQuery) ([]domain.Ticket, error) {
	var resp struct {
		Data []domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.list", http.MethodGet, "/tickets", token, query.values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetTicket fetches one ticket by id.
func (c *Client) GetTicket(ctx context.Context, token, id string) (*domain.Ticket, error) {
	var resp struct {
		Data domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.get", http.MethodGet, "/tickets/"+url.PathEscape(id), token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateTicket creates a ticket upstream.
func (c *Client) CreateTicket(ctx context.Context, token string, input TicketInput) (*domain.Ticket, error) {
	var resp struct {
		Data domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.create", http.MethodPost, "/tickets", token, nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateTicket updates a ticket upstream.
func (c *Client) UpdateTicket(ctx context.Context, token, id string, input TicketInput) (*domain.Ticket, error) {
	var resp struct {
		Data domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.update", http.MethodPut, "/tickets/"+url.PathEscape(id), token, nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteTicket deletes a ticket upstream.
func (c *Client) DeleteTicket(ctx context.Context, token, id string) error {
	return c.do(ctx, "tickets.delete", http.MethodDelete, "/tickets/"+url.PathEscape(id), token, nil, nil, nil)
}

// ChangeTicketStatus moves a ticket to a new status.
func (c *Client) ChangeTicketStatus(ctx context.Context, token, id, status, comment string) (*domain.Ticket, error) {
	body := map[string]string{"status": status}
	if comment != "" {
		body["comment"] = comment
	}
	var resp struct {
		Data domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.status", http.MethodPost, "/tickets/"+url.PathEscape(id)+"/status", token, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AssignTicket sets or clears the ticket assignee.
func (c *Client) AssignTicket(ctx context.Context, token, id string, assigneeID *string) (*domain.Ticket, error) {
	body := map[string]*string{"assignee_id": assigneeID}
	var resp struct {
		Data domain.Ticket `json:"data"`
	}
	if err := c.do(ctx, "tickets.assign", http.MethodPost, "/tickets/"+url.PathEscape(id)+"/assign", token, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AddNote appends a note to a ticket.
func (c *Client) AddNote(ctx context.Context, token, id, body string, internal bool) (*domain.Note, error) {
	payload := map[string]any{"body": body, "internal": internal}
	var resp struct {
		Data domain.Note `json:"data"`
	}
	if err := c.do(ctx, "tickets.notes.add", http.MethodPost, "/tickets/"+url.PathEscape(id)+"/notes", token, nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListNotes fetches a ticket's notes.
func (c *Client) ListNotes(ctx context.Context, token, id string) ([]domain.Note, error) {
	var resp struct {
		Data []domain.Note `json:"data"`
	}
	if err := c.do(ctx, "tickets.notes.list", http.MethodGet, "/tickets/"+url.PathEscape(id)+"/notes", token, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
