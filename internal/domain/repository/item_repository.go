package repository

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// ItemStatusFilter filtros de estado de stock para listados.
const (
	ItemStatusAll        = "all"
	ItemStatusInStock    = "inStock"
	ItemStatusLowStock   = "lowStock"
	ItemStatusOutOfStock = "outOfStock"
)

// ItemFilter criterios de listado de items (siempre acotado a un equipo).
type ItemFilter struct {
	TeamID     string
	CategoryID string
	Status     string // all, inStock, lowStock, outOfStock
	Search     string // búsqueda por nombre
	Archived   bool
	Limit      int
	Offset     int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// CurrentStock solo se escribe vía Create (stock inicial) o UpdateStock
// (desde el caso de uso de movimientos, dentro de la transacción del libro).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate carga el item bloqueando su fila (SELECT FOR UPDATE).
	// Serializa los movimientos concurrentes contra el mismo item; solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateStock(ctx context.Context, id string, newStock int) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, int, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	CountByUnit(ctx context.Context, unitID string) (int, error)
}
