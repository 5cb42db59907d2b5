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

// ItemUseCase casos de uso de catálogo para ítems. La cantidad y el estado
// se mutan únicamente vía el motor de movimientos; aquí solo metadatos.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un ítem nuevo. Los instrumentos nacen AVAILABLE; las
// herramientas no llevan estado. ErrDuplicate si el código ya existe.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	category, err := normalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	code := strings.TrimSpace(in.InternalCode)
	if code == "" {
		return nil, fmt.Errorf("%w: internal_code es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity debe ser cero o positivo", domain.ErrInvalidInput)
	}

	now := time.Now()
	item := &entity.Item{
		ID:               uuid.New().String(),
		Category:         category,
		Name:             name,
		InternalCode:     code,
		Quantity:         in.Quantity,
		CalibrationDueAt: in.CalibrationDueAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if item.IsInstrument() {
		item.Status = entity.StatusAvailable
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update edita metadatos del catálogo. Cantidad y estado nunca se tocan aquí:
// una corrección de stock se registra como movimiento compensatorio.
func (uc *ItemUseCase) Update(category, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	cat, err := normalizeCategory(category)
	if err != nil {
		return nil, err
	}
	if in.Name == nil && in.InternalCode == nil && in.CalibrationDueAt == nil {
		return nil, fmt.Errorf("%w: informe al menos un campo para actualizar", domain.ErrInvalidInput)
	}
	item, err := uc.repo.GetByID(cat, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.InternalCode != nil {
		if strings.TrimSpace(*in.InternalCode) == "" {
			return nil, fmt.Errorf("%w: internal_code no puede quedar vacío", domain.ErrInvalidInput)
		}
		item.InternalCode = strings.TrimSpace(*in.InternalCode)
	}
	if in.CalibrationDueAt != nil {
		item.CalibrationDueAt = in.CalibrationDueAt
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.UpdateDetails(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista ítems por categoría (vacía = todas) y estado opcional.
func (uc *ItemUseCase) List(category, status string, limit int) ([]dto.ItemResponse, error) {
	cat := ""
	if category != "" {
		normalized, err := normalizeCategory(category)
		if err != nil {
			return nil, err
		}
		cat = normalized
	}
	items, err := uc.repo.List(cat, strings.ToUpper(strings.TrimSpace(status)), limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

// GetByCode busca un ítem por código patrimonial. Si category está vacía
// busca en ambas categorías.
func (uc *ItemUseCase) GetByCode(code, category string) (*dto.ItemResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: codigo es obligatorio", domain.ErrInvalidInput)
	}
	var item *entity.Item
	var err error
	if category == "" {
		item, err = uc.repo.FindByCode(code)
	} else {
		cat, cerr := normalizeCategory(category)
		if cerr != nil {
			return nil, cerr
		}
		item, err = uc.repo.GetByCode(cat, code)
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// CalibrationAlerts instrumentos con calibración vencida o por vencer en N días.
func (uc *ItemUseCase) CalibrationAlerts(days int) (*dto.CalibrationAlertsResponse, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days debe ser mayor que cero", domain.ErrInvalidInput)
	}
	now := time.Now()
	limit := now.Add(time.Duration(days) * 24 * time.Hour)
	items, err := uc.repo.ListCalibrationDue(limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CalibrationAlertsResponse{
		Overdue:  []dto.ItemResponse{},
		Upcoming: []dto.ItemResponse{},
	}
	for _, item := range items {
		if item.CalibrationDueAt == nil {
			continue
		}
		if item.CalibrationDueAt.Before(now) {
			resp.Overdue = append(resp.Overdue, *toItemResponse(item))
		} else {
			resp.Upcoming = append(resp.Upcoming, *toItemResponse(item))
		}
	}
	resp.Total = len(resp.Overdue) + len(resp.Upcoming)
	return resp, nil
}

func normalizeCategory(category string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(category)) {
	case entity.CategoryInstrument:
		return entity.CategoryInstrument, nil
	case entity.CategoryTool:
		return entity.CategoryTool, nil
	}
	return "", fmt.Errorf("%w: category debe ser instrument o tool", domain.ErrInvalidInput)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:               i.ID,
		Category:         i.Category,
		Name:             i.Name,
		InternalCode:     i.InternalCode,
		Quantity:         i.Quantity,
		Status:           i.Status,
		CalibrationDueAt: i.CalibrationDueAt,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}
