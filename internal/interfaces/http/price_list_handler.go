package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
)

// PriceListHandler listas de precios de venta (protegido).
type PriceListHandler struct {
	uc *usecase.PriceListUseCase
}

// NewPriceListHandler construye el handler.
func NewPriceListHandler(uc *usecase.PriceListUseCase) *PriceListHandler {
	return &PriceListHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lista de precios
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceListRequest  true  "Nombre de la lista"
// @Success      201   {object}  dto.PriceListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-lists [post]
func (h *PriceListHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreatePriceListRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar listas de precios
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceListResponse
// @Router       /api/price-lists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Precios de una lista
// @Tags         price-lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la lista"
// @Success      200  {array}   dto.PriceListItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/items [get]
func (h *PriceListHandler) Items(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.Items(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetItemPrice godoc
// @Summary      Fijar precio de un producto en la lista
// @Description  Crea o reemplaza el precio y lo audita con origen PRICE_LIST.
// @Tags         price-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                   true  "ID de la lista"
// @Param        productId  path  string                   true  "ID del producto"
// @Param        body       body  dto.SetItemPriceRequest  true  "Precio"
// @Success      200  {object}  dto.SetItemPriceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/items/{productId} [put]
func (h *PriceListHandler) SetItemPrice(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.SetItemPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetItemPrice(c.UserContext(), companyID, GetUserID(c), c.Params("id"), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
