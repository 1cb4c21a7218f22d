package inventory

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el alta del movimiento y la
// actualización del stock del item ocurran ambas o ninguna, y que el bloqueo
// de fila (GetForUpdate) se sostenga durante toda la secuencia
// leer-calcular-escribir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// AccessGate contrato mínimo del Access Gate que necesitan los casos de uso
// (lo implementa *access.Gate; la interfaz permite fakes en tests).
type AccessGate interface {
	Assert(ctx context.Context, ident access.Identity, permission string) error
}

// ViewInvalidator descarta las vistas derivadas cacheadas (tablero, reportes)
// de un equipo tras una mutación. Puede ser nil: sin cache no hay nada que invalidar.
type ViewInvalidator interface {
	InvalidateTeam(ctx context.Context, teamID string)
}
