package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStats totales del tablero (items activos).
type InventoryStats struct {
	TotalItems int
	LowStock   int
	OutOfStock int
	TotalValue decimal.Decimal
}

// MovementTotals sumas de cantidades por tipo en un período.
type MovementTotals struct {
	Movements   int
	TotalIn     int
	TotalOut    int
	TotalAdjust int
}

// DayMovementResult cantidades movidas por día, para la tendencia del reporte.
type DayMovementResult struct {
	Date   time.Time
	In     int
	Out    int
	Adjust int
}

// CategoryStockResult stock y valor agrupados por categoría (items activos).
// CategoryID vacío agrupa los items sin categoría.
type CategoryStockResult struct {
	CategoryID   string
	CategoryName string
	NameAr       string
	ItemCount    int
	TotalStock   int
	TotalValue   decimal.Decimal
}

// TopItemResult item ordenado por volumen de movimiento en el período.
type TopItemResult struct {
	ItemID        string
	ItemName      string
	Archived      bool
	TotalIn       int
	TotalOut      int
	TotalMovement int
}

// LowStockResult item en o por debajo de su umbral, con el déficit a reponer.
type LowStockResult struct {
	ItemID       string
	ItemName     string
	CurrentStock int
	Threshold    int
	Deficit      int
}

// ReportRepository consultas read-only de agregación sobre items y movimientos.
// No tiene estado propio: todo se recalcula desde el registro y el libro.
type ReportRepository interface {
	GetInventoryStats(ctx context.Context, teamID string) (*InventoryStats, error)
	GetMovementTotals(ctx context.Context, teamID string, since *time.Time) (*MovementTotals, error)
	GetMovementsByDay(ctx context.Context, teamID string, since *time.Time) ([]DayMovementResult, error)
	GetStockByCategory(ctx context.Context, teamID string) ([]CategoryStockResult, error)
	GetTopMovingItems(ctx context.Context, teamID string, since *time.Time, limit int) ([]TopItemResult, error)
	GetLowStockItems(ctx context.Context, teamID string, limit int) ([]LowStockResult, error)
}
