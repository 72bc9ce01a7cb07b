package dto

import "time"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	ClientID    string  `json:"client_id"`
	Priority    string  `json:"priority"`
	Type        string  `json:"type"`
	SupportType string  `json:"support_type"`
	BillingType string  `json:"billing_type"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	ClientID    string  `json:"client_id"`
	Priority    string  `json:"priority"`
	Type        string  `json:"type"`
	SupportType string  `json:"support_type"`
	BillingType string  `json:"billing_type"`
	AssigneeID  *string `json:"assignee_id"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// AssignTicketRequest payload. A null assignee_id clears the assignment.
type AssignTicketRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// CreateNoteRequest payload.
type CreateNoteRequest struct {
	Body     string `json:"body"`
	Internal bool   `json:"internal"`
}

// TicketResponse is the dashboard's ticket representation. Upstream
// timestamps pass through as strings; next_action_due is computed here.
type TicketResponse struct {
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

// NoteResponse represents a ticket note.
type NoteResponse struct {
	ID         string `json:"id"`
	TicketID   string `json:"ticket_id"`
	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	Body       string `json:"body"`
	Internal   bool   `json:"internal"`
	CreatedAt  string `json:"created_at,omitempty"`
}
