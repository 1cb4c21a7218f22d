package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/denta-stock-api/internal/domain"
	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, team_id, created_by, name, sku, category_id, unit_id, description,
	current_stock, low_stock_threshold, cost_per_unit, location, notes,
	is_archived, archived_at, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un item nuevo con su stock inicial.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO inventory_items (id, team_id, created_by, name, sku, category_id, unit_id, description,
			current_stock, low_stock_threshold, cost_per_unit, location, notes, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TeamID, item.CreatedBy, item.Name, nullIfEmpty(item.SKU),
		nullIfEmpty(item.CategoryID), item.UnitID, item.Description,
		item.CurrentStock, item.LowStockThreshold, item.CostPerUnit,
		item.Location, item.Notes, item.Archived, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID; nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item")
}

// GetForUpdate carga el item bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción; serializa los movimientos
// concurrentes contra el mismo item.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item for update")
}

// Update actualiza los campos descriptivos. No toca current_stock: el stock
// solo lo muta el libro de movimientos vía UpdateStock.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE inventory_items
		SET name = $2, sku = $3, category_id = $4, unit_id = $5, description = $6,
			low_stock_threshold = $7, cost_per_unit = $8, location = $9, notes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullIfEmpty(item.SKU), nullIfEmpty(item.CategoryID), item.UnitID,
		item.Description, item.LowStockThreshold, item.CostPerUnit,
		item.Location, item.Notes, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock escribe el stock derivado. Solo lo llama el caso de uso de
// movimientos, dentro de la misma transacción que inserta en el libro.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// Archive marca el item como archivado congelando su stock.
func (r *ItemRepo) Archive(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET is_archived = true, archived_at = now(), updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("archive item: %w", err)
	}
	return nil
}

// Delete borra físicamente el item. Solo se llama para items sin movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// List lista items del equipo con filtros y paginación; devuelve también el total.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, int, error) {
	where := []string{"team_id = $1", "is_archived = $2"}
	args := []any{filter.TeamID, filter.Archived}

	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	switch filter.Status {
	case repository.ItemStatusInStock:
		where = append(where, "current_stock > 0")
	case repository.ItemStatusLowStock:
		where = append(where, "low_stock_threshold IS NOT NULL AND current_stock > 0 AND current_stock <= low_stock_threshold")
	case repository.ItemStatusOutOfStock:
		where = append(where, "current_stock = 0")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventory_items WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM inventory_items WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		itemColumns, cond, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list items rows: %w", err)
	}
	return items, total, nil
}

// CountByCategory cuenta items (activos o archivados) que referencian la categoría.
func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM inventory_items WHERE category_id = $1`, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

// CountByUnit cuenta items que referencian la unidad.
func (r *ItemRepo) CountByUnit(ctx context.Context, unitID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM inventory_items WHERE unit_id = $1`, unitID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items by unit: %w", err)
	}
	return n, nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// scanItem escanea una fila con itemColumns. sku y category_id son NULLables
// en DB pero strings vacíos en el dominio.
func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var sku, categoryID *string
	err := row.Scan(
		&i.ID, &i.TeamID, &i.CreatedBy, &i.Name, &sku, &categoryID, &i.UnitID, &i.Description,
		&i.CurrentStock, &i.LowStockThreshold, &i.CostPerUnit, &i.Location, &i.Notes,
		&i.Archived, &i.ArchivedAt, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sku != nil {
		i.SKU = *sku
	}
	if categoryID != nil {
		i.CategoryID = *categoryID
	}
	return &i, nil
}

// nullIfEmpty permite que columnas UNIQUE/FK NULLables no choquen con "".
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
