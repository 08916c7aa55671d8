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

// PriceListUseCase listas de precios de venta y sus ítems.
type PriceListUseCase struct {
	listRepo    repository.SalesPriceListRepository
	productRepo repository.ProductRepository
	auditor     PriceAuditor
}

// NewPriceListUseCase construye el caso de uso.
func NewPriceListUseCase(listRepo repository.SalesPriceListRepository, productRepo repository.ProductRepository, auditor PriceAuditor) *PriceListUseCase {
	return &PriceListUseCase{listRepo: listRepo, productRepo: productRepo, auditor: auditor}
}

func (uc *PriceListUseCase) Create(ctx context.Context, companyID string, in dto.CreatePriceListRequest) (*dto.PriceListResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	list := &entity.SalesPriceList{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}
	return toPriceListResponse(list), nil
}

func (uc *PriceListUseCase) List(ctx context.Context, companyID string) ([]dto.PriceListResponse, error) {
	lists, err := uc.listRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, *toPriceListResponse(l))
	}
	return out, nil
}

// Items devuelve los precios de la lista. ErrNotFound si la lista no es de la empresa.
func (uc *PriceListUseCase) Items(ctx context.Context, companyID, listID string) ([]dto.PriceListItemResponse, error) {
	if _, err := uc.ownedList(ctx, companyID, listID); err != nil {
		return nil, err
	}
	items, err := uc.listRepo.Items(ctx, listID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceListItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.PriceListItemResponse{
			PriceListID: it.PriceListID,
			ProductID:   it.ProductID,
			ProductCode: it.ProductCode,
			ProductName: it.ProductName,
			Price:       it.Price,
			UpdatedAt:   it.UpdatedAt,
		})
	}
	return out, nil
}

// SetItemPrice fija el precio del producto en la lista y lo audita como PRICE_LIST
// cuando es nuevo en la lista o distinto al anterior.
func (uc *PriceListUseCase) SetItemPrice(ctx context.Context, companyID, userID, listID, productID string, in dto.SetItemPriceRequest) (*dto.SetItemPriceResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrNegativePrice
	}
	in.Price = priceaudit.RoundPrice(in.Price)
	if _, err := uc.ownedList(ctx, companyID, listID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	previous, err := uc.listRepo.SetItemPrice(ctx, listID, productID, in.Price)
	if err != nil {
		return nil, err
	}
	out := &dto.SetItemPriceResponse{
		PriceListID:   listID,
		ProductID:     productID,
		PreviousPrice: previous,
		Price:         in.Price,
	}
	if previous == nil || !previous.Equal(in.Price) {
		out.Audit = uc.auditor.LogPriceChange(ctx, dto.LogPriceChangeInput{
			ProductID:        productID,
			CompanyID:        companyID,
			PreviousPrice:    previous,
			NewPrice:         in.Price,
			SalesPriceListID: &listID,
			ChangeSource:     entity.ChangeSourcePriceList,
			CreatedByID:      optionalString(userID),
			Reason:           in.Reason,
			Notes:            in.Notes,
		})
	}
	return out, nil
}

func (uc *PriceListUseCase) ownedList(ctx context.Context, companyID, listID string) (*entity.SalesPriceList, error) {
	list, err := uc.listRepo.GetByID(ctx, companyID, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	return list, nil
}

func toPriceListResponse(l *entity.SalesPriceList) *dto.PriceListResponse {
	return &dto.PriceListResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
}
