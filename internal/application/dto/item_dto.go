package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/inventory/items.
// CurrentStock aquí es el único camino legítimo para fijar stock fuera del
// libro de movimientos: es el stock inicial, antes de que exista movimiento alguno.
type CreateItemRequest struct {
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	CategoryID        string           `json:"category_id,omitempty"`
	UnitID            string           `json:"unit_id"`
	Description       string           `json:"description,omitempty"`
	CurrentStock      int              `json:"current_stock"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	CostPerUnit       *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Location          string           `json:"location,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// UpdateItemRequest body para PUT /api/inventory/items/:id. Solo campos
// descriptivos: el stock actual no es actualizable por esta vía.
type UpdateItemRequest struct {
	Name              *string          `json:"name,omitempty"`
	SKU               *string          `json:"sku,omitempty"`
	CategoryID        *string          `json:"category_id,omitempty"`
	UnitID            *string          `json:"unit_id,omitempty"`
	Description       *string          `json:"description,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	CostPerUnit       *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Location          *string          `json:"location,omitempty"`
	Notes             *string          `json:"notes,omitempty"`
}

// ItemResponse representación HTTP de un item.
type ItemResponse struct {
	ID                string           `json:"id"`
	TeamID            string           `json:"team_id"`
	Name              string           `json:"name"`
	SKU               string           `json:"sku,omitempty"`
	CategoryID        string           `json:"category_id,omitempty"`
	UnitID            string           `json:"unit_id"`
	Description       string           `json:"description,omitempty"`
	CurrentStock      int              `json:"current_stock"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty"`
	CostPerUnit       *decimal.Decimal `json:"cost_per_unit,omitempty"`
	Location          string           `json:"location,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Archived          bool             `json:"archived"`
	ArchivedAt        *time.Time       `json:"archived_at,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ItemListResponse listado paginado de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// Resultados posibles de DELETE /api/inventory/items/:id.
const (
	DeleteOutcomeDeleted  = "deleted"
	DeleteOutcomeArchived = "archived"
)

// DeleteItemResponse resultado etiquetado del borrado: eliminado de forma
// permanente o degradado a archivado para preservar la auditoría.
type DeleteItemResponse struct {
	Outcome string `json:"outcome"` // deleted | archived
}
