package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/domain"
	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
	"github.com/mdc-pro/mdcpro-api/internal/domain/repository"
	"github.com/mdc-pro/mdcpro-api/internal/infrastructure/store"
	"github.com/mdc-pro/mdcpro-api/pkg/logger"
)

// InventoryUseCase casos de uso de inventario por lotes. Las lecturas de
// listado pasan por la colección con respaldo local; las escrituras van al
// remoto y refrescan el cache de forma oportunista.
type InventoryUseCase struct {
	repo       repository.InventoryRepository
	collection *store.Collection[entity.InventoryItem]
	log        *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	collection *store.Collection[entity.InventoryItem],
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, collection: collection, log: log}
}

// List lista los lotes con respaldo local ante caída del remoto.
func (uc *InventoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.InventoryItemResponse, error) {
	page.DefaultPage()
	items, err := uc.collection.Fetch(ctx, func(ctx context.Context) ([]entity.InventoryItem, error) {
		list, err := uc.repo.List(ctx, page.Limit, page.Offset)
		if err != nil {
			return nil, err
		}
		out := make([]entity.InventoryItem, 0, len(list))
		for _, it := range list {
			out = append(out, *it)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]*dto.InventoryItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toInventoryResponse(&items[i], now))
	}
	return out, nil
}

// GetByID devuelve un lote.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(item, time.Now()), nil
}

// Create registra un lote nuevo.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	cost := decimal.Zero
	if in.UnitCost != "" {
		var err error
		if cost, err = decimal.NewFromString(in.UnitCost); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		UnitCost:     cost,
		ReorderLevel: in.ReorderLevel,
		Category:     in.Category,
		BatchNumber:  in.BatchNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.ProductionDate != "" {
		if t, err := time.Parse("2006-01-02", in.ProductionDate); err == nil {
			item.ProductionDate = t
		}
	}
	if in.ExpiryDate != "" {
		if t, err := time.Parse("2006-01-02", in.ExpiryDate); err == nil {
			item.ExpiryDate = t
		}
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.refreshCache(ctx)
	return toInventoryResponse(item, now), nil
}

// Update corrige cantidad, costo, reorden o vencimiento de un lote.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.UnitCost != "" {
		cost, err := decimal.NewFromString(in.UnitCost)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCost = cost
	}
	if in.ReorderLevel != nil {
		item.ReorderLevel = *in.ReorderLevel
	}
	if in.ExpiryDate != "" {
		if t, err := time.Parse("2006-01-02", in.ExpiryDate); err == nil {
			item.ExpiryDate = t
		}
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.refreshCache(ctx)
	return toInventoryResponse(item, time.Now()), nil
}

// Delete elimina un lote.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.refreshCache(ctx)
	return nil
}

// refreshCache reescribe el cache local con el inventario completo tras una
// escritura exitosa. Best effort.
func (uc *InventoryUseCase) refreshCache(ctx context.Context) {
	list, err := uc.repo.List(ctx, 1000, 0)
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo releer inventario para el cache local")
		return
	}
	items := make([]entity.InventoryItem, 0, len(list))
	for _, it := range list {
		items = append(items, *it)
	}
	uc.collection.Refresh(ctx, items)
}

func toInventoryResponse(i *entity.InventoryItem, now time.Time) *dto.InventoryItemResponse {
	return &dto.InventoryItemResponse{
		ID:             i.ID,
		Name:           i.Name,
		Quantity:       i.Quantity,
		Unit:           i.Unit,
		UnitCost:       i.UnitCost.StringFixed(2),
		ReorderLevel:   i.ReorderLevel,
		Category:       i.Category,
		BatchNumber:    i.BatchNumber,
		ProductionDate: i.ProductionDate,
		ExpiryDate:     i.ExpiryDate,
		Expired:        i.Expired(now),
		CriticalStock:  i.CriticalStock(),
	}
}
