// Package pdf implementa la exportación del reporte de inventario a PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del laboratorio  │  Período + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: items / valor / movimientos (in, out, adjust)     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Stock por categoría                                 │
//	│  TABLA: Items con más movimiento                            │
//	│  TABLA: Alertas de stock bajo (con déficit)                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/jhoicas/denta-stock-api/internal/application/dto"
	"github.com/jhoicas/denta-stock-api/internal/application/reports"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 110, Blue: 253}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ reports.PDFRenderer = (*MarotoReportRenderer)(nil)

// MarotoReportRenderer implementa reports.PDFRenderer usando Maroto v2.
type MarotoReportRenderer struct{}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer() *MarotoReportRenderer { return &MarotoReportRenderer{} }

// Render genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportRenderer) Render(report *dto.ReportResponse, teamName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor(teamName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, teamName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)

	if len(report.StockByCategory) > 0 {
		m.AddRows(sectionTitle("STOCK POR CATEGORÍA"))
		m.AddRows(categoryHeaderRow())
		for _, c := range report.StockByCategory {
			m.AddRows(categoryRow(c))
		}
	}

	if len(report.TopMovingItems) > 0 {
		m.AddRows(sectionTitle("ITEMS CON MÁS MOVIMIENTO"))
		m.AddRows(topItemsHeaderRow())
		for _, t := range report.TopMovingItems {
			m.AddRows(topItemRow(t))
		}
	}

	if len(report.LowStockItems) > 0 {
		m.AddRows(sectionTitle("ALERTAS DE STOCK BAJO"))
		m.AddRows(lowStockHeaderRow())
		for _, l := range report.LowStockItems {
			m.AddRows(lowStockRow(l))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: laboratorio (izq) y período + fecha de generación (der).
func headerRow(report *dto.ReportResponse, teamName string) core.Row {
	if teamName == "" {
		teamName = "Laboratorio dental"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(teamName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(report.Period), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: contadores del período en dos filas de celdas.
func summaryRows(s dto.ReportSummaryDTO) []core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return []core.Row{
		row.New(13).Add(
			cell("Items activos", fmt.Sprintf("%d", s.TotalItems)),
			cell("Valor del stock", s.TotalValue.StringFixed(2)),
			cell("Stock bajo", fmt.Sprintf("%d", s.LowStockCount)),
			cell("Agotados", fmt.Sprintf("%d", s.OutOfStockCount)),
		),
		row.New(13).Add(
			cell("Movimientos", fmt.Sprintf("%d", s.TotalMovements)),
			cell("Entradas", fmt.Sprintf("%d", s.TotalIn)),
			cell("Salidas", fmt.Sprintf("%d", s.TotalOut)),
			cell("Ajustes", fmt.Sprintf("%d", s.TotalAdjust)),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 3}),
		),
	)
}

func headerCell(size int, label string, al align.Type) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: al, Top: 1}),
	)
}

func bodyCell(size int, value string, al align.Type) core.Col {
	return col.New(size).Add(
		text.New(value, props.Text{Size: 8, Align: al, Top: 1}),
	)
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(5, "Categoría", align.Left),
		headerCell(2, "Items", align.Right),
		headerCell(2, "Stock", align.Right),
		headerCell(3, "Valor", align.Right),
	)
}

func categoryRow(c dto.CategoryStockDTO) core.Row {
	name := c.CategoryName
	if name == "" {
		name = "Sin categoría"
	}
	return row.New(5).Add(
		bodyCell(5, name, align.Left),
		bodyCell(2, fmt.Sprintf("%d", c.ItemCount), align.Right),
		bodyCell(2, fmt.Sprintf("%d", c.TotalStock), align.Right),
		bodyCell(3, c.TotalValue.StringFixed(2), align.Right),
	)
}

func topItemsHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(6, "Item", align.Left),
		headerCell(2, "Entradas", align.Right),
		headerCell(2, "Salidas", align.Right),
		headerCell(2, "Total", align.Right),
	)
}

func topItemRow(t dto.TopItemDTO) core.Row {
	name := t.ItemName
	if t.Archived {
		name += " (archivado)"
	}
	return row.New(5).Add(
		bodyCell(6, name, align.Left),
		bodyCell(2, fmt.Sprintf("%d", t.TotalIn), align.Right),
		bodyCell(2, fmt.Sprintf("%d", t.TotalOut), align.Right),
		bodyCell(2, fmt.Sprintf("%d", t.TotalMovement), align.Right),
	)
}

func lowStockHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(6, "Item", align.Left),
		headerCell(2, "Stock", align.Right),
		headerCell(2, "Umbral", align.Right),
		headerCell(2, "Déficit", align.Right),
	)
}

func lowStockRow(l dto.LowStockItemDTO) core.Row {
	return row.New(5).Add(
		bodyCell(6, l.ItemName, align.Left),
		bodyCell(2, fmt.Sprintf("%d", l.CurrentStock), align.Right),
		bodyCell(2, fmt.Sprintf("%d", l.Threshold), align.Right),
		bodyCell(2, fmt.Sprintf("%d", l.Deficit), align.Right),
	)
}

func periodLabel(period string) string {
	switch period {
	case "7d":
		return "últimos 7 días"
	case "30d":
		return "últimos 30 días"
	case "90d":
		return "últimos 90 días"
	case "all":
		return "todo el historial"
	}
	return period
}
