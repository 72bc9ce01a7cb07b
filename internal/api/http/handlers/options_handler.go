package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stacktrack/stacktrack/internal/api/dto"
	"github.com/stacktrack/stacktrack/internal/domain"
	"github.com/stacktrack/stacktrack/internal/service"
	"github.com/stacktrack/stacktrack/internal/session"
	apperrors "github.com/stacktrack/stacktrack/pkg/util"
)

// OptionsHandler serves the ticket option catalog.
type OptionsHandler struct {
	service *service.OptionsService
}

// NewOptionsHandler constructs handler.
func NewOptionsHandler(optionsService *service.OptionsService) *OptionsHandler {
	return &OptionsHandler{service: optionsService}
}

// GetCatalog GET /api/options.
func (h *OptionsHandler) GetCatalog(c *fiber.Ctx) error {
	token, ok := session.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	catalog, err := h.service.Catalog(c.UserContext(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": catalogResponse(catalog)})
}

func catalogResponse(catalog *domain.OptionCatalog) dto.OptionCatalogResponse {
	return dto.OptionCatalogResponse{
		Statuses:     optionResponses(catalog.Statuses),
		Priorities:   optionResponses(catalog.Priorities),
		Types:        optionResponses(catalog.Types),
		SupportTypes: optionResponses(catalog.SupportTypes),
		BillingTypes: optionResponses(catalog.BillingTypes),
	}
}

func optionResponses(options []domain.TicketOption) []dto.OptionResponse {
	resp := make([]dto.OptionResponse, 0, len(options))
	for _, option := range options {
		resp = append(resp, dto.OptionResponse{
			Key:      option.Key,
			Label:    option.Label,
			Default:  option.Default,
			SLAHours: option.SLAHours,
		})
	}
	return resp
}
