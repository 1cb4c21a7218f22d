package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/denta-stock-api/internal/domain/entity"
	"github.com/jhoicas/denta-stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, team_id, created_by, item_id, movement_type, quantity,
	previous_stock, new_stock, reason, notes, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// El libro es append-only: solo INSERT y SELECT; no existen UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta una entrada del libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, team_id, created_by, item_id, movement_type, quantity,
			previous_stock, new_stock, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TeamID, m.CreatedBy, m.ItemID, m.Type, m.Quantity,
		m.PreviousStock, m.NewStock, m.Reason, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List devuelve movimientos del equipo, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	where := []string{"team_id = $1"}
	args := []any{filter.TeamID}

	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		where = append(where, fmt.Sprintf("item_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("movement_type = $%d", len(args)))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query := fmt.Sprintf(`SELECT %s FROM stock_movements WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		movementColumns, strings.Join(where, " AND "), len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByItemAsc devuelve el libro completo del item en orden cronológico,
// para repetición (replay) y verificación de cadena.
func (r *MovementRepo) ListByItemAsc(ctx context.Context, itemID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE item_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// CountByItem cuenta las entradas del libro de un item (decide borrar vs archivar).
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		err := rows.Scan(
			&m.ID, &m.TeamID, &m.CreatedBy, &m.ItemID, &m.Type, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.Reason, &m.Notes, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movements rows: %w", err)
	}
	return out, nil
}
