package repository

import "github.com/jhoicas/metrologia-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// List devuelve usuarios ordenados por nombre; roles no vacío
	// restringe a esos roles.
	List(roles []string) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
}
