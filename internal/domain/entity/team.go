package entity

import "time"

// FeatureInventory es la clave de funcionalidad del módulo de inventario dental.
const FeatureInventory = "denta_stock"

// Team es el tenant: todos los datos (items, movimientos, categorías, unidades)
// pertenecen exactamente a un equipo y nunca son visibles entre equipos.
type Team struct {
	ID         string
	Name       string
	Currency   string
	PlanID     string
	IsTrial    bool
	ExpireDate *time.Time // nil = sin vencimiento
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Expired informa si la suscripción (trial o plan) está vencida.
func (t *Team) Expired() bool {
	return t.ExpireDate != nil && t.ExpireDate.Before(time.Now())
}

// Plan plan de suscripción con las funcionalidades incluidas.
type Plan struct {
	ID           string
	Name         string
	FeatureKeys  []string
	DurationDays int
	CreatedAt    time.Time
}

// HasFeature informa si el plan incluye la funcionalidad.
func (p *Plan) HasFeature(key string) bool {
	for _, k := range p.FeatureKeys {
		if k == key {
			return true
		}
	}
	return false
}

// TeamDetails equipo con su plan resuelto, para el Access Gate y /teams/me.
type TeamDetails struct {
	Team Team
	Plan *Plan // nil si el equipo no tiene plan asignado
}
