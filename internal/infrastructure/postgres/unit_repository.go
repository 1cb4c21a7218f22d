package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación del puerto UnitRepository sobre PostgreSQL.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de persistencia para unidades.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad nueva.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	query := `
		INSERT INTO inventory_units (id, team_id, created_by, name, name_ar, abbreviation, abbreviation_ar, sort_order, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.TeamID, u.CreatedBy, u.Name, u.NameAr, u.Abbreviation, u.AbbreviationAr,
		u.SortOrder, u.Archived, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID; nil si no existe.
func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.Unit, error) {
	query := `
		SELECT id, team_id, created_by, name, name_ar, abbreviation, abbreviation_ar, sort_order, is_archived, created_at, updated_at
		FROM inventory_units WHERE id = $1`
	var u entity.Unit
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.TeamID, &u.CreatedBy, &u.Name, &u.NameAr, &u.Abbreviation, &u.AbbreviationAr,
		&u.SortOrder, &u.Archived, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// Update actualiza la unidad.
func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	query := `
		UPDATE inventory_units SET name = $2, name_ar = $3, abbreviation = $4, abbreviation_ar = $5, sort_order = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.NameAr, u.Abbreviation, u.AbbreviationAr, u.SortOrder, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit: %w", err)
	}
	return nil
}

// Delete borra la unidad. La guarda referencial vive en el caso de uso.
func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

// ListByTeam lista unidades activas del equipo ordenadas por sort_order.
func (r *UnitRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.Unit, error) {
	query := `
		SELECT id, team_id, created_by, name, name_ar, abbreviation, abbreviation_ar, sort_order, is_archived, created_at, updated_at
		FROM inventory_units WHERE team_id = $1 AND is_archived = false
		ORDER BY sort_order ASC, name ASC`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var out []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		err := rows.Scan(&u.ID, &u.TeamID, &u.CreatedBy, &u.Name, &u.NameAr, &u.Abbreviation, &u.AbbreviationAr,
			&u.SortOrder, &u.Archived, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("units rows: %w", err)
	}
	return out, nil
}

// MaxSortOrder devuelve el mayor sort_order del equipo (0 si no hay filas).
func (r *UnitRepo) MaxSortOrder(ctx context.Context, teamID string) (int, error) {
	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM inventory_units WHERE team_id = $1`, teamID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max unit sort_order: %w", err)
	}
	return max, nil
}
