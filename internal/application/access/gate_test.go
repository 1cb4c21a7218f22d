package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
)

// fakeTeamRepo implementa repository.TeamRepository sobre un mapa en memoria.
type fakeTeamRepo struct {
	details map[string]*entity.TeamDetails
	calls   int
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *entity.Team) error { return nil }
func (f *fakeTeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	d := f.details[id]
	if d == nil {
		return nil, nil
	}
	return &d.Team, nil
}
func (f *fakeTeamRepo) GetDetails(ctx context.Context, id string) (*entity.TeamDetails, error) {
	f.calls++
	return f.details[id], nil
}
func (f *fakeTeamRepo) GetPlanByName(ctx context.Context, name string) (*entity.Plan, error) {
	return nil, nil
}

func activeTeam(id string, featureKeys []string, expire *time.Time) *entity.TeamDetails {
	return &entity.TeamDetails{
		Team: entity.Team{ID: id, Name: "Lab Sonrisa", PlanID: "plan-1", ExpireDate: expire},
		Plan: &entity.Plan{ID: "plan-1", Name: "pro", FeatureKeys: featureKeys},
	}
}

func TestAssert_AccesoConcedido(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{
		"team-1": activeTeam("team-1", []string{entity.FeatureInventory}, &future),
	}}
	gate := NewGate(repo)

	ident := Identity{UserID: "u1", TeamID: "team-1", Role: entity.RoleTecnico}
	require.NoError(t, gate.Assert(context.Background(), ident, entity.PermInventoryUpdate))
}

func TestAssert_IdentidadIncompleta(t *testing.T) {
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{}}
	gate := NewGate(repo)

	err := gate.Assert(context.Background(), Identity{}, entity.PermInventoryView)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, repo.calls, "no debe consultar el equipo sin identidad")
}

func TestAssert_EquipoInexistente(t *testing.T) {
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{}}
	gate := NewGate(repo)

	ident := Identity{UserID: "u1", TeamID: "ghost", Role: entity.RoleAdmin}
	assert.ErrorIs(t, gate.Assert(context.Background(), ident, entity.PermInventoryView), domain.ErrForbidden)
}

func TestAssert_FuncionalidadNoContratada(t *testing.T) {
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{
		"team-1": activeTeam("team-1", []string{"otra_cosa"}, nil),
	}}
	gate := NewGate(repo)

	ident := Identity{UserID: "u1", TeamID: "team-1", Role: entity.RoleAdmin}
	assert.ErrorIs(t, gate.Assert(context.Background(), ident, entity.PermInventoryView), domain.ErrFeatureDisabled)
}

func TestAssert_SuscripcionVencida(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{
		"team-1": activeTeam("team-1", []string{entity.FeatureInventory}, &past),
	}}
	gate := NewGate(repo)

	ident := Identity{UserID: "u1", TeamID: "team-1", Role: entity.RoleAdmin}
	assert.ErrorIs(t, gate.Assert(context.Background(), ident, entity.PermInventoryView), domain.ErrSubscriptionExpired)
}

func TestAssert_RolSinPermiso(t *testing.T) {
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{
		"team-1": activeTeam("team-1", []string{entity.FeatureInventory}, nil),
	}}
	gate := NewGate(repo)

	// consulta solo puede ver: cualquier mutación queda prohibida.
	ident := Identity{UserID: "u1", TeamID: "team-1", Role: entity.RoleConsulta}
	assert.NoError(t, gate.Assert(context.Background(), ident, entity.PermInventoryView))
	assert.ErrorIs(t, gate.Assert(context.Background(), ident, entity.PermInventoryDelete), domain.ErrForbidden)
}

// El orden importa: con funcionalidad no contratada Y suscripción vencida,
// gana el chequeo de funcionalidad (es el primero).
func TestAssert_OrdenDeChequeos(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &fakeTeamRepo{details: map[string]*entity.TeamDetails{
		"team-1": activeTeam("team-1", nil, &past),
	}}
	gate := NewGate(repo)

	ident := Identity{UserID: "u1", TeamID: "team-1", Role: entity.RoleConsulta}
	assert.ErrorIs(t, gate.Assert(context.Background(), ident, entity.PermInventoryView), domain.ErrFeatureDisabled)
}
