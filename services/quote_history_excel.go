package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteHistoryExcel writes the quote history as a single-sheet
// workbook and returns the file contents.
func GenerateQuoteHistoryExcel(data QuoteHistoryExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cotizaciones"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	headers := []string{"Fecha", "Cliente", "Servicio", "Plan", "Licencias", "Add-ons", "Descuento", "Aprobación", "Total estimado (USD)", "Estado"}
	widths := []float64{22, 28, 32, 12, 10, 36, 11, 32, 20, 22}
	lastCol := columns[len(columns)-1]
	for i, c := range columns {
		if err := f.SetColWidth(sheet, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3A8A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}
	// Gray italics for quotes whose service was removed.
	staleStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10, Italic: true, Color: "#6B7280"},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create stale style: %w", err)
	}
	moneyFmt := "$#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}, CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)
	f.SetCellValue(sheet, "A2", "Generado: "+FormatLongDateES(data.GeneratedAt))

	const headerRow = 4
	for i, h := range headers {
		f.SetCellValue(sheet, columns[i]+strconv.Itoa(headerRow), h)
	}
	f.SetCellStyle(sheet, "A"+strconv.Itoa(headerRow), lastCol+strconv.Itoa(headerRow), headerStyle)

	row := headerRow + 1
	for _, r := range data.Rows {
		rs := strconv.Itoa(row)
		f.SetCellValue(sheet, "A"+rs, FormatLongDateES(r.CreatedAt))
		f.SetCellValue(sheet, "B"+rs, sanitizeExcelCell(r.Customer))
		f.SetCellValue(sheet, "C"+rs, sanitizeExcelCell(r.Service))
		f.SetCellValue(sheet, "D"+rs, sanitizeExcelCell(r.Plan))
		f.SetCellValue(sheet, "E"+rs, r.Licenses)
		f.SetCellValue(sheet, "F"+rs, sanitizeExcelCell(r.Addons))
		f.SetCellValue(sheet, "G"+rs, FormatPercent(r.Discount))
		f.SetCellValue(sheet, "H"+rs, r.Approval)
		if r.Priced {
			f.SetCellValue(sheet, "I"+rs, r.FinalPrice)
		} else {
			f.SetCellValue(sheet, "I"+rs, "-")
		}
		f.SetCellValue(sheet, "J"+rs, r.StatusLabel())

		style := cellStyle
		if !r.Available {
			style = staleStyle
		}
		f.SetCellStyle(sheet, "A"+rs, lastCol+rs, style)
		if r.Priced {
			f.SetCellStyle(sheet, "I"+rs, "I"+rs, moneyStyle)
		}
		row++
	}

	row++
	rs := strconv.Itoa(row)
	f.SetCellValue(sheet, "H"+rs, "Total estimado")
	f.SetCellValue(sheet, "I"+rs, data.TotalFinal)
	f.SetCellStyle(sheet, "H"+rs, "I"+rs, totalStyle)

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: "A" + strconv.Itoa(headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
