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

// ClientsHandler manages client proxy endpoints.
type ClientsHandler struct {
	service *service.ClientService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clientService *service.ClientService) *ClientsHandler {
	return &ClientsHandler{service: clientService}
}

// ListClients GET /api/clients.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	query := upstream.ClientQuery{
		Search:   c.Query("search"),
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("page_size"), 20),
	}
	if activeStr := c.Query("active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			query.Active = &active
		}
	}
	clients, err := h.service.List(c.UserContext(), token, query)
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetClient GET /api/clients/:id.
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	client, err := h.service.Get(c.UserContext(), token, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// CreateClient POST /api/clients.
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}
	client, err := h.service.Create(c.UserContext(), token, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clientResponse(client)})
}

// UpdateClient PUT /api/clients/:id.
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	req, err := parseClientRequest(c)
	if err != nil {
		return err
	}
	client, err := h.service.Update(c.UserContext(), token, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// DeleteClient DELETE /api/clients/:id.
func (h *ClientsHandler) DeleteClient(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.service.Delete(c.UserContext(), token, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseClientRequest(c *fiber.Ctx) (upstream.ClientInput, error) {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return upstream.ClientInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return upstream.ClientInput{}, apperrors.NewValidationError("name required", nil)
	}
	return upstream.ClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
		Active:  req.Active,
	}, nil
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Company:   client.Company,
		Notes:     client.Notes,
		Active:    client.Active,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}
