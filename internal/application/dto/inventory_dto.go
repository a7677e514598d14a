package dto

import "time"

// CreateInventoryItemRequest entrada para registrar un lote de producto.
type CreateInventoryItemRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Quantity       int    `json:"quantity" validate:"min=0"`
	Unit           string `json:"unit" validate:"omitempty,max=20"`
	UnitCost       string `json:"unit_cost" validate:"omitempty"`
	ReorderLevel   int    `json:"reorder_level" validate:"min=0"`
	Category       string `json:"category" validate:"omitempty,max=50"`
	BatchNumber    string `json:"batch_number" validate:"omitempty,max=50"`
	ProductionDate string `json:"production_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate     string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateInventoryItemRequest entrada para corregir un lote.
type UpdateInventoryItemRequest struct {
	Quantity     *int   `json:"quantity" validate:"omitempty,min=0"`
	UnitCost     string `json:"unit_cost" validate:"omitempty"`
	ReorderLevel *int   `json:"reorder_level" validate:"omitempty,min=0"`
	ExpiryDate   string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// InventoryItemResponse salida de un lote con sus estados derivados.
type InventoryItemResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	UnitCost       string    `json:"unit_cost"`
	ReorderLevel   int       `json:"reorder_level"`
	Category       string    `json:"category,omitempty"`
	BatchNumber    string    `json:"batch_number,omitempty"`
	ProductionDate time.Time `json:"production_date,omitempty"`
	ExpiryDate     time.Time `json:"expiry_date,omitempty"`
	Expired        bool      `json:"expired"`
	CriticalStock  bool      `json:"critical_stock"`
}

// CreateExpenseRequest entrada para registrar un gasto o pérdida.
type CreateExpenseRequest struct {
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=300"`
	Amount      string `json:"amount" validate:"required"`
	IsLoss      bool   `json:"is_loss"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      string    `json:"amount"`
	IsLoss      bool      `json:"is_loss"`
}
