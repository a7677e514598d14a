package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un lote de producto en inventario.
// Se crea con la entrada manual del lote y se descuenta al despachar pedidos;
// no hay reposición automática. "Vencido" y "stock crítico" son derivados, no
// se almacenan.
type InventoryItem struct {
	ID             string
	Name           string
	Quantity       int
	Unit           string // "kg", "unidad", "bolsa"
	UnitCost       decimal.Decimal
	ReorderLevel   int
	Category       string // "snack" | "service" | ...
	BatchNumber    string
	ProductionDate time.Time
	ExpiryDate     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Expired indica si el lote está vencido respecto a now.
func (i *InventoryItem) Expired(now time.Time) bool {
	return !i.ExpiryDate.IsZero() && i.ExpiryDate.Before(now)
}

// CriticalStock indica si la cantidad cayó al nivel de reorden o por debajo.
func (i *InventoryItem) CriticalStock() bool {
	return i.Quantity <= i.ReorderLevel
}
