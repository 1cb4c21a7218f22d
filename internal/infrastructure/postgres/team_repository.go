package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación del puerto TeamRepository sobre PostgreSQL.
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador de persistencia para equipos y planes.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un equipo nuevo.
func (r *TeamRepo) Create(ctx context.Context, t *entity.Team) error {
	query := `
		INSERT INTO teams (id, name, currency, plan_id, is_trial, expire_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Currency, t.PlanID, t.IsTrial, t.ExpireDate, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID; nil si no existe.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	query := `
		SELECT id, name, currency, plan_id, is_trial, expire_date, created_by, created_at, updated_at
		FROM teams WHERE id = $1`
	var t entity.Team
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Currency, &t.PlanID, &t.IsTrial, &t.ExpireDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return &t, nil
}

// GetDetails devuelve el equipo con su plan resuelto en una sola consulta
// (LEFT JOIN: el plan puede no existir). Es la lectura del Access Gate.
func (r *TeamRepo) GetDetails(ctx context.Context, id string) (*entity.TeamDetails, error) {
	query := `
		SELECT t.id, t.name, t.currency, t.plan_id, t.is_trial, t.expire_date, t.created_by, t.created_at, t.updated_at,
			p.id, p.name, p.feature_keys, p.duration_days, p.created_at
		FROM teams t
		LEFT JOIN plans p ON p.id = t.plan_id
		WHERE t.id = $1`
	var t entity.Team
	var planID, planName *string
	var featureKeys []string
	var durationDays *int
	var planCreatedAt *time.Time
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Currency, &t.PlanID, &t.IsTrial, &t.ExpireDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		&planID, &planName, &featureKeys, &durationDays, &planCreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team details: %w", err)
	}
	details := &entity.TeamDetails{Team: t}
	if planID != nil {
		plan := &entity.Plan{ID: *planID, FeatureKeys: featureKeys}
		if planName != nil {
			plan.Name = *planName
		}
		if durationDays != nil {
			plan.DurationDays = *durationDays
		}
		if planCreatedAt != nil {
			plan.CreatedAt = *planCreatedAt
		}
		details.Plan = plan
	}
	return details, nil
}

// GetPlanByName busca un plan por nombre (ej. "trial"); nil si no existe.
func (r *TeamRepo) GetPlanByName(ctx context.Context, name string) (*entity.Plan, error) {
	query := `SELECT id, name, feature_keys, duration_days, created_at FROM plans WHERE name = $1`
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, name).Scan(&p.ID, &p.Name, &p.FeatureKeys, &p.DurationDays, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan by name: %w", err)
	}
	return &p, nil
}
