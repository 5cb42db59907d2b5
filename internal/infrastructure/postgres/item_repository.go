package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, category, name, internal_code, quantity, status, calibration_due_at, created_at, updated_at"

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem nuevo. ErrDuplicate si internal_code ya existe (23505).
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, category, name, internal_code, quantity, status, calibration_due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	status := (*string)(nil)
	if item.Status != "" {
		status = &item.Status
	}
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Category, item.Name, item.InternalCode, item.Quantity,
		status, item.CalibrationDueAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por id dentro de su categoría. nil si no existe.
func (r *ItemRepo) GetByID(category, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 AND id = $2`
	return r.scanOne(query, category, id)
}

// GetByCode obtiene un ítem por código patrimonial dentro de su categoría. nil si no existe.
func (r *ItemRepo) GetByCode(category, code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 AND internal_code = $2`
	return r.scanOne(query, category, code)
}

// GetForUpdateByID obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido con un Querier atado a una transacción.
func (r *ItemRepo) GetForUpdateByID(category, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(query, category, id)
}

// GetForUpdateByCode obtiene el ítem por código y bloquea la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdateByCode(category, code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE category = $1 AND internal_code = $2 FOR UPDATE`
	return r.scanOne(query, category, code)
}

// UpdateStock escribe cantidad, estado (nil = sin cambio) y updated_at.
// Único punto de escritura de stock; siempre se invoca dentro de la tx del motor.
func (r *ItemRepo) UpdateStock(id string, quantity int64, status *string, updatedAt time.Time) error {
	var tag pgconn.CommandTag
	var err error
	if status != nil {
		tag, err = r.q.Exec(context.Background(),
			`UPDATE items SET quantity = $2, status = $3, updated_at = $4 WHERE id = $1`,
			id, quantity, *status, updatedAt)
	} else {
		tag, err = r.q.Exec(context.Background(),
			`UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`,
			id, quantity, updatedAt)
	}
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDetails edita metadatos del catálogo; nunca toca quantity ni status.
func (r *ItemRepo) UpdateDetails(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, internal_code = $3, calibration_due_at = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.InternalCode, item.CalibrationDueAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ítems por categoría (vacía = todas) y estado opcional,
// más recientes primero.
func (r *ItemRepo) List(category, status string, limit int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	pos := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC, created_at DESC LIMIT $%d", pos)
	args = append(args, limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// FindByCode busca por código patrimonial en ambas categorías (código único global).
func (r *ItemRepo) FindByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE internal_code = $1`
	return r.scanOne(query, code)
}

// ListCalibrationDue lista instrumentos con calibración vencida o por vencer
// antes de la fecha, los más urgentes primero.
func (r *ItemRepo) ListCalibrationDue(before time.Time) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE category = $1 AND calibration_due_at IS NOT NULL AND calibration_due_at <= $2
		ORDER BY calibration_due_at ASC`
	rows, err := r.q.Query(context.Background(), query, entity.CategoryInstrument, before)
	if err != nil {
		return nil, fmt.Errorf("list calibration due: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *ItemRepo) scanOne(query string, args ...any) (*entity.Item, error) {
	item, err := scanItem(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var status *string
	err := row.Scan(&i.ID, &i.Category, &i.Name, &i.InternalCode, &i.Quantity,
		&status, &i.CalibrationDueAt, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if status != nil {
		i.Status = *status
	}
	return &i, nil
}

func scanItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
