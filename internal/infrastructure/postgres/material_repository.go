package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = "id, code, name, quantity, location, type, expires_at, created_at"

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. ErrDuplicate si el código ya existe.
func (r *MaterialRepo) Create(material *entity.Material) error {
	query := `
		INSERT INTO materials (id, code, name, quantity, location, type, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	materialType := (*string)(nil)
	if material.Type != "" {
		materialType = &material.Type
	}
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Code, material.Name, material.Quantity,
		material.Location, materialType, material.ExpiresAt, material.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// List lista materiales por nombre ascendente; materialType filtra por tipo.
func (r *MaterialRepo) List(materialType string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials`
	args := []any{}
	if materialType != "" {
		query += ` WHERE type = $1`
		args = append(args, materialType)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		var mType *string
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Quantity,
			&m.Location, &mType, &m.ExpiresAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		if mType != nil {
			m.Type = *mType
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
