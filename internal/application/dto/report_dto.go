package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse resumen del tablero: totales, alertas de stock bajo y
// movimientos recientes.
type DashboardResponse struct {
	Stats           DashboardStats     `json:"stats"`
	LowStockItems   []LowStockItemDTO  `json:"low_stock_items"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}

// DashboardStats contadores del tablero sobre items activos.
type DashboardStats struct {
	TotalItems int             `json:"total_items"`
	LowStock   int             `json:"low_stock"`
	OutOfStock int             `json:"out_of_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// LowStockItemDTO item en o por debajo de su umbral, con déficit a reponer.
type LowStockItemDTO struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
	Deficit      int    `json:"deficit"`
}

// ReportSummaryDTO totales del período del reporte.
type ReportSummaryDTO struct {
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalMovements  int             `json:"total_movements"`
	TotalIn         int             `json:"total_in"`
	TotalOut        int             `json:"total_out"`
	TotalAdjust     int             `json:"total_adjust"`
	LowStockCount   int             `json:"low_stock_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
}

// CategoryStockDTO stock y valor por categoría.
type CategoryStockDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	NameAr       string          `json:"category_name_ar,omitempty"`
	ItemCount    int             `json:"item_count"`
	TotalStock   int             `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// MovementTrendDTO cantidades movidas por día.
type MovementTrendDTO struct {
	Date   time.Time `json:"date"`
	In     int       `json:"in"`
	Out    int       `json:"out"`
	Adjust int       `json:"adjust"`
}

// TopItemDTO item ordenado por volumen de movimiento.
type TopItemDTO struct {
	ItemID        string `json:"item_id"`
	ItemName      string `json:"item_name"`
	Archived      bool   `json:"is_archived"`
	TotalIn       int    `json:"total_in"`
	TotalOut      int    `json:"total_out"`
	TotalMovement int    `json:"total_movement"`
}

// ReportResponse reporte completo del período, recalculado desde el registro
// de items y el libro de movimientos en cada consulta.
type ReportResponse struct {
	Period          string             `json:"period"` // 7d, 30d, 90d, all
	Summary         ReportSummaryDTO   `json:"summary"`
	StockByCategory []CategoryStockDTO `json:"stock_by_category"`
	MovementTrends  []MovementTrendDTO `json:"movement_trends"`
	TopMovingItems  []TopItemDTO       `json:"top_moving_items"`
	LowStockItems   []LowStockItemDTO  `json:"low_stock_items"`
}
