// Package pdf implementa la hoja de vida de un ítem en PDF con Maroto v2:
// encabezado con los datos de catálogo y una tabla con el historial de
// movimientos, los más recientes primero.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/metrologia-api/internal/application/report"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Ensure MarotoReportGenerator implements report.ItemReportPDFGenerator.
var _ report.ItemReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator genera la hoja de vida usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateItemReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateItemReport(
	_ context.Context,
	item *entity.Item,
	movements []*entity.Movement,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de vida - "+item.InternalCode, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(item))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, mov := range movements {
		m.AddRows(movementRow(mov))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del ítem (izq) y código patrimonial (der).
func headerRow(item *entity.Item) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(item.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(categoryLabel(item.Category), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(item.InternalCode, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
		),
	)
}

// detailsRow: stock actual, estado y vencimiento de calibración.
func detailsRow(item *entity.Item) core.Row {
	status := "-"
	if item.Status != "" {
		status = item.Status
	}
	calibration := "-"
	if item.CalibrationDueAt != nil {
		calibration = item.CalibrationDueAt.Format("02/01/2006")
	}
	return row.New(10).Add(
		col.New(4).Add(
			text.New(fmt.Sprintf("Stock actual: %d", item.Quantity), props.Text{Size: 9, Top: 2}),
		),
		col.New(4).Add(
			text.New("Estado: "+status, props.Text{Size: 9, Top: 2}),
		),
		col.New(4).Add(
			text.New("Calibración vence: "+calibration, props.Text{Size: 9, Top: 2}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 1.5}
	cell := props.Cell{BackgroundColor: colorPrimary}
	return row.New(7).Add(
		col.New(3).Add(text.New("Fecha", header)).WithStyle(&cell),
		col.New(2).Add(text.New("Tipo", header)).WithStyle(&cell),
		col.New(2).Add(text.New("Cantidad", header)).WithStyle(&cell),
		col.New(5).Add(text.New("Observación", header)).WithStyle(&cell),
	)
}

func movementRow(mov *entity.Movement) core.Row {
	note := ""
	if mov.Note != nil {
		note = *mov.Note
	}
	cell := props.Text{Size: 8, Top: 1}
	return row.New(6).Add(
		col.New(3).Add(text.New(mov.OccurredAt.Format("02/01/2006 15:04"), cell)),
		col.New(2).Add(text.New(typeLabel(mov.Type), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", mov.Quantity), cell)),
		col.New(5).Add(text.New(note, cell)),
	)
}

func categoryLabel(category string) string {
	if category == entity.CategoryInstrument {
		return "Instrumento calibrado"
	}
	return "Herramienta"
}

func typeLabel(movementType string) string {
	switch movementType {
	case entity.MovementTypeEntry:
		return "Entrada"
	case entity.MovementTypeExit:
		return "Salida"
	case entity.MovementTypeLoan:
		return "Préstamo"
	case entity.MovementTypeReturn:
		return "Devolución"
	}
	return movementType
}
