// Package pdf genera el reporte PDF de la punch list.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Punch List Report                                          │
//	│  Proyecto / Generated: fecha                                │
//	│  Resumen: Total | Open | In Progress | Ready | Completed    │
//	│  Filtros activos (estado, oficios, búsqueda)                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Status | Trade | Description | Location | Assigned  │
//	│         To | Created                                        │
//	│                                          Page N of M        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/punchlist-api/internal/application/punch"
	"github.com/jhoicas/punchlist-api/internal/domain/entity"
	"github.com/jhoicas/punchlist-api/internal/domain/punchlist"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorLight   = &props.Color{Red: 156, Green: 163, Blue: 175}
	colorStripe  = &props.Color{Red: 249, Green: 250, Blue: 251}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const maxDescriptionRunes = 70

// ── Generator ─────────────────────────────────────────────────────────────────

var _ punch.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa punch.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, r punch.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Punch List Report", true).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.Bottom,
			Size:    8,
			Color:   colorLight,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRows(r)...)
	m.AddRows(summaryRow(r.Summary))
	for _, l := range FilterLines(r.Filter) {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(3, props.Line{Color: colorPrimary, Thickness: 0.4}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Items)...)
	if len(r.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No items match the current filters.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRows(r punch.Report) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("Punch List Report", props.Text{Style: fontstyle.Bold, Size: 20, Color: colorPrimary}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(r.ProjectName, props.Text{Size: 12, Top: 1}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New("Generated: "+r.GeneratedAt.Format("1/2/2006"), props.Text{Size: 10, Color: colorGray, Top: 1}),
		)),
	}
}

// summaryRow: total + conteo por estado.
func summaryRow(s punchlist.Summary) core.Row {
	cell := func(label string, n int, size int) core.Col {
		return col.New(size).Add(text.New(fmt.Sprintf("%s: %d", label, n), props.Text{Size: 10, Top: 2}))
	}
	return row.New(9).Add(
		cell("Total Items", s.Total, 3),
		cell(punchlist.StatusLabel(entity.StatusOpen), s.Open, 2),
		cell(punchlist.StatusLabel(entity.StatusInProgress), s.InProgress, 2),
		cell(punchlist.StatusLabel(entity.StatusReadyForReview), s.ReadyForReview, 3),
		cell(punchlist.StatusLabel(entity.StatusCompleted), s.Completed, 2),
	)
}

// FilterLines anotaciones de los filtros activos, en orden estado → oficios → búsqueda.
func FilterLines(f punchlist.ViewFilter) []string {
	var lines []string
	if f.Status != "" && f.Status != punchlist.StatusAll {
		lines = append(lines, fmt.Sprintf("Filter: %s items only", punchlist.StatusLabel(entity.ItemStatus(f.Status))))
	}
	if len(f.Trades) > 0 {
		lines = append(lines, "Trade: "+strings.Join(f.Trades, ", "))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		lines = append(lines, fmt.Sprintf("Search: %q", q))
	}
	return lines
}

var columns = []struct {
	label string
	size  int
}{
	{"Status", 2}, {"Trade", 2}, {"Description", 3}, {"Location", 2}, {"Assigned To", 2}, {"Created", 1},
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorWhite, Top: 2, Left: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por ítem, con filas alternas sombreadas.
func tableRows(items []*entity.PunchItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		values := TableValues(it)
		cols := make([]core.Col, 0, len(columns))
		for j, c := range columns {
			cols = append(cols, col.New(c.size).Add(text.New(values[j], props.Text{Size: 8, Top: 1.5, Left: 1, Right: 1})))
		}
		r := row.New(9).Add(cols...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

// TableValues celdas de un ítem en el orden de las columnas.
func TableValues(it *entity.PunchItem) []string {
	return []string{
		punchlist.StatusLabel(it.Status),
		it.Trade,
		truncate(it.Title(), maxDescriptionRunes),
		nonEmpty(it.Location, "-"),
		nonEmpty(it.AssignedTo, "-"),
		it.CreatedAt.Format("1/2/2006"),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
