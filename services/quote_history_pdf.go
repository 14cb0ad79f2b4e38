package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuoteHistoryPDF renders the quote history as a landscape register
// using maroto/v2.
func GenerateQuoteHistoryPDF(data QuoteHistoryExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHistoryHeader(m, data)
	addHistoryTableHeader(m)
	for _, r := range data.Rows {
		addHistoryRow(m, r)
	}
	if len(data.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Aún no has generado ninguna cotización.", props.Text{Size: 9, Align: align.Center, Top: 2}),
		)))
	}
	addHistoryTotal(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHistoryHeader(m core.Maroto, data QuoteHistoryExport) {
	gray := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(text.New(data.Title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Center})),
		),
		row.New(8).Add(
			col.New(6).Add(text.New(fmt.Sprintf("%d cotizaciones", len(data.Rows)), props.Text{Size: 9, Color: gray})),
			col.New(6).Add(text.New("Fecha: "+FormatLongDateES(data.GeneratedAt), props.Text{Size: 9, Align: align.Right, Color: gray})),
		),
		row.New(4),
	)
}

// historyColumns are the grid widths of the register table; they sum to 12.
var historyColumns = []int{2, 2, 2, 1, 1, 1, 2, 1}

func addHistoryTableHeader(m core.Maroto) {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
		Top:   1.5,
	}
	headerCell := &props.Cell{BackgroundColor: &props.Color{Red: 30, Green: 58, Blue: 138}}

	labels := []string{"Fecha", "Cliente", "Servicio", "Plan", "Licencias", "Descuento", "Aprobación", "Total est."}
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(historyColumns[i]).Add(text.New(l, headerText)).WithStyle(headerCell)
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addHistoryRow(m core.Maroto, r QuoteHistoryRow) {
	base := props.Text{Size: 7, Align: align.Left, Top: 1.5}
	if !r.Available {
		base.Style = fontstyle.Italic
		base.Color = &props.Color{Red: 107, Green: 114, Blue: 128}
	}
	right := base
	right.Align = align.Right

	service := r.Service
	if !r.Available {
		service += " (Servicio no disponible)"
	}

	values := []string{
		FormatLongDateES(r.CreatedAt),
		r.Customer,
		service,
		r.Plan,
		fmt.Sprintf("%d", r.Licenses),
		FormatPercent(r.Discount),
		r.Approval,
		r.PriceLabel(),
	}
	cols := make([]core.Col, len(values))
	for i, v := range values {
		style := base
		if i >= 4 && i != 6 {
			style = right
		}
		cols[i] = col.New(historyColumns[i]).Add(text.New(v, style))
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addHistoryTotal(m core.Maroto, data QuoteHistoryExport) {
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1.5}
	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	m.AddRows(
		row.New(6),
		row.New(8).Add(
			col.New(10).Add(text.New("Total estimado a precios actuales", bold)).WithStyle(summaryCell),
			col.New(2).Add(text.New(FormatUSD(data.TotalFinal), bold)).WithStyle(summaryCell),
		),
	)
}
