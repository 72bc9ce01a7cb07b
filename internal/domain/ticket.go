package domain

import "time"

// Ticket is the dashboard's view of an upstream ticket. Timestamps are kept
// as the ISO-8601 strings the upstream API sends; they may be absent.
// NextActionDue is computed by this service, never by the upstream.
type Ticket struct {
	ID              string     `json:"id"`
	Key             string     `json:"key,omitempty"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority,omitempty"`
	Type            string     `json:"type,omitempty"`
	SupportType     string     `json:"support_type,omitempty"`
	BillingType     string     `json:"billing_type,omitempty"`
	ClientID        string     `json:"client_id,omitempty"`
	ClientName      string     `json:"client_name,omitempty"`
	AssigneeID      *string    `json:"assignee_id,omitempty"`
	AssigneeName    *string    `json:"assignee_name,omitempty"`
	CreatedAt       string     `json:"created_at,omitempty"`
	UpdatedAt       string     `json:"updated_at,omitempty"`
	StatusUpdatedAt string     `json:"status_updated_at,omitempty"`
	ClosedAt        string     `json:"closed_at,omitempty"`
	NextActionDue   *time.Time `json:"next_action_due,omitempty"`
}

// Note is a comment attached to a ticket, public or internal.
type Note struct {
	ID         string `json:"id"`
	TicketID   string `json:"ticket_id"`
	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	Body       string `json:"body"`
	Internal   bool   `json:"internal"`
	CreatedAt  string `json:"created_at,omitempty"`
}
