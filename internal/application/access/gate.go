// Package access implementa el Access Gate: la verificación única y componible
// que precede a toda operación sobre el registro o el libro. Compone tres
// chequeos booleanos independientes (funcionalidad del plan, vigencia de la
// suscripción, permiso del rol) y corta en el primero que falle, antes de leer
// o escribir dato alguno del inventario.
package access

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// Identity claims del usuario autenticado (extraídas del JWT por el middleware).
type Identity struct {
	UserID string
	TeamID string
	Role   string
}

// Gate verifica acceso a operaciones del inventario.
type Gate struct {
	teamRepo repository.TeamRepository
}

// NewGate construye el gate.
func NewGate(teamRepo repository.TeamRepository) *Gate {
	return &Gate{teamRepo: teamRepo}
}

// Assert valida que la identidad pueda ejecutar la operación que exige el
// permiso dado. Orden de los chequeos (corta en el primer fallo):
//
//  1. identidad completa y con equipo → ErrUnauthorized
//  2. el plan del equipo incluye denta_stock → ErrFeatureDisabled
//  3. la suscripción (trial o plan) no está vencida → ErrSubscriptionExpired
//  4. el rol concede el permiso → ErrForbidden
func (g *Gate) Assert(ctx context.Context, ident Identity, permission string) error {
	if ident.UserID == "" || ident.TeamID == "" {
		return domain.ErrUnauthorized
	}

	details, err := g.teamRepo.GetDetails(ctx, ident.TeamID)
	if err != nil {
		return err
	}
	if details == nil {
		return domain.ErrForbidden
	}

	if details.Plan == nil || !details.Plan.HasFeature(entity.FeatureInventory) {
		return domain.ErrFeatureDisabled
	}
	if details.Team.Expired() {
		return domain.ErrSubscriptionExpired
	}
	if !entity.RoleGrants(ident.Role, permission) {
		return domain.ErrForbidden
	}
	return nil
}
