package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/auditoria-precios/internal/application/dto"
	"github.com/jhoicas/auditoria-precios/internal/domain"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/priceaudit"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos y cambio directo de precio.
// Toda escritura de precio pasa por el auditor.
type ProductUseCase struct {
	repo    repository.ProductRepository
	auditor PriceAuditor
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, auditor PriceAuditor) *ProductUseCase {
	return &ProductUseCase{repo: repo, auditor: auditor}
}

// Create crea un producto. El precio inicial queda en el log sin precio anterior.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: code y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	in.Price = priceaudit.RoundPrice(in.Price)
	existing, err := uc.repo.GetByCompanyAndCode(ctx, companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.auditor.LogPriceChange(ctx, dto.LogPriceChangeInput{
		ProductID:    product.ID,
		CompanyID:    companyID,
		NewPrice:     product.Price,
		ChangeSource: entity.ChangeSourceProductDirect,
		CreatedByID:  optionalString(userID),
	})
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa. nil si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdatePrice escribe el nuevo precio. Si difiere del almacenado se audita como PRODUCT_DIRECT;
// una falla de la auditoría no revierte el precio.
func (uc *ProductUseCase) UpdatePrice(ctx context.Context, companyID, userID, productID string, in dto.UpdatePriceRequest) (*dto.UpdatePriceResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	in.Price = priceaudit.RoundPrice(in.Price)
	previous, err := uc.repo.SetPrice(ctx, companyID, productID, in.Price)
	if err != nil {
		return nil, err
	}

	out := &dto.UpdatePriceResponse{PreviousPrice: previous}
	if !previous.Equal(in.Price) {
		out.Changed = true
		out.Audit = uc.auditor.LogPriceChange(ctx, dto.LogPriceChangeInput{
			ProductID:     productID,
			CompanyID:     companyID,
			PreviousPrice: &previous,
			NewPrice:      in.Price,
			ChangeSource:  entity.ChangeSourceProductDirect,
			CreatedByID:   optionalString(userID),
			Reason:        in.Reason,
			Notes:         in.Notes,
		})
	}

	product, err := uc.repo.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out.Product = *toProductResponse(product)
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Code:      p.Code,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
