package report

import (
	"context"
	"strings"

	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

// movimientos incluidos en la hoja de vida (los más recientes)
const reportMovementLimit = 1000

// ItemReportUseCase genera la hoja de vida de un ítem: sus datos de catálogo
// más el historial de movimientos, renderizados a PDF. Camino de solo lectura.
type ItemReportUseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	pdf      ItemReportPDFGenerator
}

// NewItemReportUseCase construye el caso de uso.
func NewItemReportUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	pdf ItemReportPDFGenerator,
) *ItemReportUseCase {
	return &ItemReportUseCase{itemRepo: itemRepo, movRepo: movRepo, pdf: pdf}
}

// GenerateByCode localiza el ítem por código patrimonial y devuelve el PDF.
func (uc *ItemReportUseCase) GenerateByCode(ctx context.Context, code string) ([]byte, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.List(repository.MovementFilter{
		ItemID: item.ID,
		Limit:  reportMovementLimit,
	})
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateItemReport(ctx, item, movements)
}
