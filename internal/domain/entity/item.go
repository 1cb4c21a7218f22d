package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un insumo del laboratorio dental (fresas, yesos, discos de zirconio, etc.).
// CurrentStock solo se fija en la creación; después únicamente lo muta el libro de movimientos.
type Item struct {
	ID                string
	TeamID            string
	CreatedBy         string
	Name              string
	SKU               string // opcional, único por equipo si no está vacío
	CategoryID        string // vacío = sin categoría
	UnitID            string // obligatorio
	Description       string
	CurrentStock      int // siempre >= 0
	LowStockThreshold *int
	CostPerUnit       *decimal.Decimal
	Location          string
	Notes             string
	Archived          bool
	ArchivedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock informa si el stock está en o por debajo del umbral (y no agotado).
func (i *Item) LowStock() bool {
	return i.LowStockThreshold != nil && i.CurrentStock > 0 && i.CurrentStock <= *i.LowStockThreshold
}

// OutOfStock informa si el item está agotado.
func (i *Item) OutOfStock() bool { return i.CurrentStock == 0 }

// StockValue devuelve el valor del stock actual (cantidad × costo unitario), cero si no hay costo.
func (i *Item) StockValue() decimal.Decimal {
	if i.CostPerUnit == nil {
		return decimal.Zero
	}
	return i.CostPerUnit.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}
