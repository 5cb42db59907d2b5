package report

import (
	"context"

	"github.com/jhoicas/metrologia-api/internal/domain/entity"
)

// ItemReportPDFGenerator genera la hoja de vida de un ítem en PDF
// (datos del ítem + tabla de movimientos).
type ItemReportPDFGenerator interface {
	GenerateItemReport(ctx context.Context, item *entity.Item, movements []*entity.Movement) ([]byte, error)
}
