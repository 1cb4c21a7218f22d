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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO inventory_categories (id, team_id, created_by, name, name_ar, sort_order, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.TeamID, c.CreatedBy, c.Name, c.NameAr, c.SortOrder, c.Archived, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `
		SELECT id, team_id, created_by, name, name_ar, sort_order, is_archived, created_at, updated_at
		FROM inventory_categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TeamID, &c.CreatedBy, &c.Name, &c.NameAr, &c.SortOrder, &c.Archived, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza la categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE inventory_categories SET name = $2, name_ar = $3, sort_order = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.NameAr, c.SortOrder, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete borra la categoría. La guarda referencial vive en el caso de uso.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListByTeam lista categorías activas del equipo ordenadas por sort_order.
func (r *CategoryRepo) ListByTeam(ctx context.Context, teamID string) ([]*entity.Category, error) {
	query := `
		SELECT id, team_id, created_by, name, name_ar, sort_order, is_archived, created_at, updated_at
		FROM inventory_categories WHERE team_id = $1 AND is_archived = false
		ORDER BY sort_order ASC, name ASC`
	rows, err := r.q.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		err := rows.Scan(&c.ID, &c.TeamID, &c.CreatedBy, &c.Name, &c.NameAr, &c.SortOrder, &c.Archived, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categories rows: %w", err)
	}
	return out, nil
}

// MaxSortOrder devuelve el mayor sort_order del equipo (0 si no hay filas).
func (r *CategoryRepo) MaxSortOrder(ctx context.Context, teamID string) (int, error) {
	var max int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM inventory_categories WHERE team_id = $1`, teamID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max category sort_order: %w", err)
	}
	return max, nil
}
