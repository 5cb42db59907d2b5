package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

// MaterialUseCase catálogo de materiales consumibles. Los materiales no
// pasan por el motor de movimientos: su stock es un dato informativo.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un material. forceGiro fija el tipo en "giro" ignorando el
// tipo del request (alta rápida de materiales de reposición continua).
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest, forceGiro bool) (*dto.MaterialResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity debe ser cero o positivo", domain.ErrInvalidInput)
	}
	materialType := strings.TrimSpace(in.Type)
	if forceGiro {
		materialType = entity.MaterialTypeGiro
	}

	material := &entity.Material{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Quantity:  in.Quantity,
		Location:  strings.TrimSpace(in.Location),
		Type:      materialType,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales, opcionalmente filtrados por tipo.
func (uc *MaterialUseCase) List(materialType string) ([]dto.MaterialResponse, error) {
	materials, err := uc.repo.List(strings.TrimSpace(materialType))
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Location:  m.Location,
		Type:      m.Type,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
