package http

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
)

// ProductHandler productos y escrituras de precio (protegido).
type ProductHandler struct {
	uc   *usecase.ProductUseCase
	bulk *usecase.BulkPriceUseCase
	imp  *usecase.ImportUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, bulk *usecase.BulkPriceUseCase, imp *usecase.ImportUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, bulk: bulk, imp: imp}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePrice godoc
// @Summary      Cambiar precio de un producto
// @Description  Escribe el precio y, si cambió, lo registra en la auditoría (PRODUCT_DIRECT).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.UpdatePriceRequest  true  "Nuevo precio"
// @Success      200   {object}  dto.UpdatePriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/price [put]
func (h *ProductHandler) UpdatePrice(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdatePrice(c.UserContext(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BulkUpdate godoc
// @Summary      Ajuste porcentual masivo de precios
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkPriceUpdateRequest  true  "Porcentaje y productos"
// @Success      200   {object}  dto.BulkPriceUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products/prices/bulk [post]
func (h *ProductHandler) BulkUpdate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.BulkPriceUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.bulk.Apply(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar precios desde archivo
// @Description  Archivo codigo;precio[;motivo] como multipart (campo "file") o cuerpo crudo.
// @Tags         products
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        charset  query  string  false  "utf-8 | iso-8859-1 | windows-1252"  default(utf-8)
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/prices/import [post]
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return invalidBody(c)
		}
		defer f.Close()
		r = f
	} else {
		body := c.Body()
		if len(body) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo requerido"})
		}
		r = bytes.NewReader(body)
	}
	out, err := h.imp.Import(c.UserContext(), companyID, GetUserID(c), r, c.Query("charset"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
