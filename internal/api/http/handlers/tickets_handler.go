package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stacktrack/stacktrack/internal/api/dto"
	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/service"
	"github.com/stacktrack/stacktrack/internal/session"
	"github.com/stacktrack/stacktrack/internal/upstream"
	apperrors "github.com/stacktrack/stacktrack/pkg/util"
)

// TicketsHandler manages ticket proxy endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	tickets, err := h.service.List(c.UserContext(), token, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	ticket, err := h.service.Get(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Subject) == "" {
		return apperrors.NewValidationError("subject required", nil)
	}
	ticket, err := h.service.Create(c.UserContext(), token, upstream.TicketInput{
		Subject:     req.Subject,
		Description: req.Description,
		ClientID:    req.ClientID,
		Priority:    req.Priority,
		Type:        req.Type,
		SupportType: req.SupportType,
		BillingType: req.BillingType,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Update(c.UserContext(), token, c.Params("id"), upstream.TicketInput{
		Subject:     req.Subject,
		Description: req.Description,
		ClientID:    req.ClientID,
		Priority:    req.Priority,
		Type:        req.Type,
		SupportType: req.SupportType,
		BillingType: req.BillingType,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// DeleteTicket DELETE /api/tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.service.Delete(c.UserContext(), token, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ChangeStatus POST /api/tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	ticket, err := h.service.ChangeStatus(c.UserContext(), token, c.Params("id"), req.Status, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AssignTicket POST /api/tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Assign(c.UserContext(), token, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// AddNote POST /api/tickets/:id/notes.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.NewValidationError("body required", nil)
	}
	note, err := h.service.AddNote(c.UserContext(), token, c.Params("id"), req.Body, req.Internal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": noteResponse(note)})
}

// ListNotes GET /api/tickets/:id/notes.
func (h *TicketsHandler) ListNotes(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	notes, err := h.service.ListNotes(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, noteResponse(&notes[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketQuery(c *fiber.Ctx) upstream.TicketQuery {
	query := upstream.TicketQuery{
		ClientID:   c.Query("client_id"),
		AssigneeID: c.Query("assignee_id"),
		Search:     c.Query("search"),
		Page:       parseInt(c.Query("page"), 1),
		PageSize:   parseInt(c.Query("page_size"), 20),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			query.Statuses = append(query.Statuses, strings.TrimSpace(part))
		}
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		for _, part := range strings.Split(priorityStr, ",") {
			query.Priorities = append(query.Priorities, strings.TrimSpace(part))
		}
	}
	return query
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:              ticket.ID,
		Key:             ticket.Key,
		Subject:         ticket.Subject,
		Description:     ticket.Description,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		Type:            ticket.Type,
		SupportType:     ticket.SupportType,
		BillingType:     ticket.BillingType,
		ClientID:        ticket.ClientID,
		ClientName:      ticket.ClientName,
		AssigneeID:      ticket.AssigneeID,
		AssigneeName:    ticket.AssigneeName,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
		StatusUpdatedAt: ticket.StatusUpdatedAt,
		ClosedAt:        ticket.ClosedAt,
		NextActionDue:   ticket.NextActionDue,
	}
}

func noteResponse(note *domain.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:         note.ID,
		TicketID:   note.TicketID,
		AuthorID:   note.AuthorID,
		AuthorName: note.AuthorName,
		Body:       note.Body,
		Internal:   note.Internal,
		CreatedAt:  note.CreatedAt,
	}
}
