package events

import "time"

// EventType enumerates dashboard audit event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketNoteAdded     EventType = "ticket_note_added"
	EventTicketDeleted       EventType = "ticket_deleted"
	EventSessionCleared      EventType = "session_cleared"
)

// Event records an action relayed through the dashboard.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject  string `json:"subject"`
	ClientID string `json:"client_id,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus string `json:"old_status,omitempty"`
	NewStatus string `json:"new_status"`
	Comment   string `json:"comment,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketNoteAddedPayload payload.
type TicketNoteAddedPayload struct {
	NoteID   string `json:"note_id"`
	Internal bool   `json:"internal"`
}

// SessionClearedPayload payload.
type SessionClearedPayload struct {
	Reason string `json:"reason"`
}
