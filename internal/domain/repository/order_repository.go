package repository

import (
	"context"
	"time"

	"github.com/mdc-pro/mdcpro-api/internal/domain/entity"
)

// OrderFilter criterios opcionales para listar pedidos.
// Los campos en cero no filtran.
type OrderFilter struct {
	Status      string
	ClientEmail string
	Wholesale   *bool
	From        time.Time
	To          time.Time
	Limit       int
	Offset      int
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	// Create persiste cabecera y líneas. El caller decide si corre dentro de
	// una transacción (vía TxRunner).
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
