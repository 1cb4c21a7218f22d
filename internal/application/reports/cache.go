// Package reports contiene los casos de uso de lectura agregada: el tablero,
// el reporte por período y su exportación a PDF. Todo se recalcula desde el
// registro de items y el libro de movimientos; la cache solo guarda vistas
// derivadas y se invalida en cada mutación.
package reports

import (
	"context"
	"time"
)

// ViewCache cachea vistas derivadas serializadas (JSON) por clave.
// Una implementación nil-safe vive en infrastructure/cache; los casos de uso
// toleran cache == nil (se degrada a recalcular siempre).
type ViewCache interface {
	// Get devuelve el valor cacheado y true, o false si no hay entrada.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// InvalidateTeam descarta todas las vistas derivadas del equipo.
	InvalidateTeam(ctx context.Context, teamID string)
}

// Claves de cache por equipo. InvalidateTeam debe cubrirlas todas.
func dashboardKey(teamID string) string { return "dashboard:" + teamID }

func reportKey(teamID, period string) string { return "reports:" + teamID + ":" + period }
