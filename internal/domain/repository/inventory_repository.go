package repository

import (
	"context"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para lotes de inventario.
type InventoryRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	// DecrementByName descuenta qty unidades del producto indicado, consumiendo
	// lotes en orden de vencimiento (FEFO). Retorna domain.ErrInsufficientStock
	// si el stock total no alcanza; en ese caso no descuenta nada.
	DecrementByName(ctx context.Context, name string, qty int) ([]*entity.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}
