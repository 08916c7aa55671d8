package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/dto"
)

// PriceAlertHandler alertas y umbral de la empresa (protegido).
type PriceAlertHandler struct {
	uc *audit.AlertUseCase
}

// NewPriceAlertHandler construye el handler.
func NewPriceAlertHandler(uc *audit.AlertUseCase) *PriceAlertHandler {
	return &PriceAlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas de precio
// @Tags         price-alerts
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.PriceAlertListResponse
// @Router       /api/price-alerts [get]
func (h *PriceAlertHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), companyID, c.QueryBool("unread", false), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar alerta como leída
// @Tags         price-alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-alerts/{id}/read [patch]
func (h *PriceAlertHandler) MarkRead(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.MarkRead(c.UserContext(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSettings godoc
// @Summary      Umbral de alertas vigente
// @Tags         price-alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertSettingsResponse
// @Router       /api/price-alerts/settings [get]
func (h *PriceAlertHandler) GetSettings(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetSettings(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Cambiar umbral de alertas
// @Tags         price-alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateAlertSettingsRequest  true  "Umbral y estado"
// @Success      200  {object}  dto.AlertSettingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/price-alerts/settings [put]
func (h *PriceAlertHandler) UpdateSettings(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateAlertSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
