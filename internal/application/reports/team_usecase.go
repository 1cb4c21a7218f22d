package reports

import (
	"context"

	"github.com/jhoicas/denta-stock-api/internal/application/access"
	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

// TeamUseCase resuelve GET /api/teams/me: el equipo del token con su plan y
// estado de suscripción. Sin permiso de inventario: basta estar autenticado.
type TeamUseCase struct {
	teamRepo repository.TeamRepository
}

// NewTeamUseCase construye el caso de uso.
func NewTeamUseCase(teamRepo repository.TeamRepository) *TeamUseCase {
	return &TeamUseCase{teamRepo: teamRepo}
}

// Me devuelve el equipo de la identidad autenticada.
func (uc *TeamUseCase) Me(ctx context.Context, ident access.Identity) (*dto.TeamResponse, error) {
	if ident.UserID == "" || ident.TeamID == "" {
		return nil, domain.ErrUnauthorized
	}
	details, err := uc.teamRepo.GetDetails(ctx, ident.TeamID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, domain.ErrNotFound
	}
	resp := &dto.TeamResponse{
		ID:         details.Team.ID,
		Name:       details.Team.Name,
		Currency:   details.Team.Currency,
		IsTrial:    details.Team.IsTrial,
		ExpireDate: details.Team.ExpireDate,
		Expired:    details.Team.Expired(),
		CreatedAt:  details.Team.CreatedAt,
	}
	if details.Plan != nil {
		resp.Plan = &dto.PlanDTO{
			ID:          details.Plan.ID,
			Name:        details.Plan.Name,
			FeatureKeys: details.Plan.FeatureKeys,
		}
	}
	return resp, nil
}
