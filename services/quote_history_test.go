package services

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"serviceplus/catalog"
)

func historyFixture() QuoteHistoryExport {
	c := testCatalog()
	quotes := []Quote{
		{ID: "q2", ServiceID: "svc", ServiceName: "Soporte Workspace", CustomerName: "=HYPERLINK(\"x\")", PlanName: catalog.PlanBasic, Licenses: 10, SelectedAddons: []string{"a1"}, Discount: 25, CreatedAt: time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "q1", ServiceID: "gone", ServiceName: "Servicio Retirado", CustomerName: "Beta", PlanName: catalog.PlanPremium, Licenses: 3, Discount: 55, CreatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}
	return BuildQuoteHistoryExport(BuildListings(quotes, c), c, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC))
}

func TestBuildQuoteHistoryExport(t *testing.T) {
	data := historyFixture()
	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows", len(data.Rows))
	}

	live := data.Rows[0]
	if !live.Available || !live.Priced || !floatClose(live.FinalPrice, 90) {
		t.Errorf("unexpected live row %+v", live)
	}
	if live.Addons != "Seguridad" || live.Approval != "Aprobación de Gerencia Comercial" {
		t.Errorf("unexpected live row labels %+v", live)
	}

	stale := data.Rows[1]
	if stale.Available || stale.Priced || stale.PriceLabel() != "-" {
		t.Errorf("unexpected stale row %+v", stale)
	}
	if stale.StatusLabel() != "Servicio no disponible" || stale.Approval != "Aprobación del CEO" {
		t.Errorf("unexpected stale row labels %+v", stale)
	}
	if !floatClose(data.TotalFinal, 90) {
		t.Errorf("TotalFinal = %v, want 90", data.TotalFinal)
	}
}

func TestGenerateQuoteHistoryExcel(t *testing.T) {
	b, err := GenerateQuoteHistoryExcel(historyFixture())
	if err != nil {
		t.Fatalf("GenerateQuoteHistoryExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(b))
	if err != nil {
		t.Fatalf("failed to open generated workbook: %v", err)
	}
	defer f.Close()

	const sheet = "Cotizaciones"
	checks := map[string]string{
		"A1": "Historial de Cotizaciones",
		"A4": "Fecha",
		"J4": "Estado",
		"A5": "15 de octubre de 2026",
		"B5": "'=HYPERLINK(\"x\")",
		"C5": "Soporte Workspace",
		"F5": "Seguridad",
		"J5": "Disponible",
		"I6": "-",
		"J6": "Servicio no disponible",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Errorf("GetCellValue(%s) error = %v", cell, err)
			continue
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	total, _ := f.GetCellValue(sheet, "H8")
	if total != "Total estimado" {
		t.Errorf("H8 = %q", total)
	}
}

func TestGenerateQuoteHistoryExcel_Empty(t *testing.T) {
	b, err := GenerateQuoteHistoryExcel(QuoteHistoryExport{Title: quoteHistoryTitle, GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("GenerateQuoteHistoryExcel() error = %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty workbook bytes")
	}
}

func TestGenerateQuoteHistoryPDF(t *testing.T) {
	for name, data := range map[string]QuoteHistoryExport{
		"with rows": historyFixture(),
		"empty":     {Title: quoteHistoryTitle, GeneratedAt: time.Now()},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := GenerateQuoteHistoryPDF(data)
			if err != nil {
				t.Fatalf("GenerateQuoteHistoryPDF() error = %v", err)
			}
			if len(result) < 5 || string(result[:5]) != "%PDF-" {
				t.Errorf("result does not start with PDF header")
			}
		})
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Acme", "Acme"},
		{"=1+1", "'=1+1"},
		{"+54 11", "'+54 11"},
		{"-x", "'-x"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
