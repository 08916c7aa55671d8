// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con DB_DRIVER=memory y en los tests de aplicación y HTTP.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain/entity"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
)

var (
	_ audit.AuditTxRunner     = (*Store)(nil)
	_ usecase.PricingTxRunner = (*Store)(nil)
)

type itemKey struct {
	listID    string
	productID string
}

type state struct {
	users    map[string]entity.User
	products map[string]entity.Product
	lists    map[string]entity.SalesPriceList
	items    map[itemKey]entity.SalesPriceListItem
	logs     []entity.PriceChangeLog
	alerts   []entity.PriceAlert
	settings map[string]entity.PriceAlertSettings
}

func newState() *state {
	return &state{
		users:    make(map[string]entity.User),
		products: make(map[string]entity.Product),
		lists:    make(map[string]entity.SalesPriceList),
		items:    make(map[itemKey]entity.SalesPriceListItem),
		settings: make(map[string]entity.PriceAlertSettings),
	}
}

func (s *state) clone() *state {
	c := &state{
		users:    make(map[string]entity.User, len(s.users)),
		products: make(map[string]entity.Product, len(s.products)),
		lists:    make(map[string]entity.SalesPriceList, len(s.lists)),
		items:    make(map[itemKey]entity.SalesPriceListItem, len(s.items)),
		logs:     append([]entity.PriceChangeLog(nil), s.logs...),
		alerts:   append([]entity.PriceAlert(nil), s.alerts...),
		settings: make(map[string]entity.PriceAlertSettings, len(s.settings)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.lists {
		c.lists[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.settings {
		c.settings[k] = v
	}
	return c
}

// Store datos compartidos por todos los repos en memoria.
// Las transacciones trabajan sobre una copia que reemplaza al estado solo si fn no falla.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// access ejecuta fn sobre tx si el repo está atado a una transacción; si no, bajo el lock del store.
func (s *Store) access(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) runTx(fn func(tx *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.data.clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// SeedUser registra un usuario para que su nombre aparezca en los reportes.
func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

// Products repo de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (s *Store) PriceLists() *SalesPriceListRepo { return &SalesPriceListRepo{s: s} }

func (s *Store) PriceChangeLogs() *PriceChangeLogRepo { return &PriceChangeLogRepo{s: s} }

func (s *Store) PriceAlerts() *PriceAlertRepo { return &PriceAlertRepo{s: s} }

func (s *Store) AlertSettings() *PriceAlertSettingsRepo { return &PriceAlertSettingsRepo{s: s} }

// RunAudit log y alerta en la misma transacción.
func (s *Store) RunAudit(ctx context.Context, fn func(
	logRepo repository.PriceChangeLogRepository,
	alertRepo repository.PriceAlertRepository,
) error) error {
	return s.runTx(func(tx *state) error {
		return fn(&PriceChangeLogRepo{s: s, tx: tx}, &PriceAlertRepo{s: s, tx: tx})
	})
}

// RunPricing escrituras de precios de varios productos.
func (s *Store) RunPricing(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return s.runTx(func(tx *state) error {
		return fn(&ProductRepo{s: s, tx: tx})
	})
}
