package repository

import "github.com/jhoicas/metrologia-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	// List lista materiales; materialType no vacío filtra por tipo.
	List(materialType string) ([]*entity.Material, error)
}
