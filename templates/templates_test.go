package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"serviceplus/catalog"
	"serviceplus/services"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("expected output to contain %q", f)
		}
	}
}

func TestNavData_IsActive(t *testing.T) {
	tests := []struct {
		path, prefix string
		want         bool
	}{
		{"/portfolio", "/portfolio", true},
		{"/services/x", "/portfolio", true},
		{"/quotes", "/portfolio", false},
		{"/quotes", "/quotes", true},
		{"/products/new", "/products", true},
	}
	for _, tt := range tests {
		if got := (NavData{ActivePath: tt.path}).IsActive(tt.prefix); got != tt.want {
			t.Errorf("IsActive(%q, %q) = %v, want %v", tt.path, tt.prefix, got, tt.want)
		}
	}
}

func TestLayout_EscapesContentAndShowsBadge(t *testing.T) {
	body := render(t, Layout("<Título>", NavData{ActivePath: "/quotes", QuoteCount: 3}, nil))
	assertContains(t, body,
		"&lt;Título&gt; | GTM Service Plus Portal",
		`class="nav-link active"`,
		`<span class="badge">3</span>`,
	)
	if strings.Contains(body, "<Título>") {
		t.Error("title was not escaped")
	}
}

func TestPortfolioContent_EmptyState(t *testing.T) {
	body := render(t, PortfolioContent(PortfolioData{ActiveLine: catalog.BusinessLineAWS}))
	assertContains(t, body,
		"No se encontraron servicios",
		"Aún no has generado cotizaciones.",
		`class="tab active" role="tab" hx-get="/portfolio?line=AWS"`,
	)
	if strings.Contains(body, "Limpiar Todo") {
		t.Error("clear link shown without active filters")
	}
}

func TestPortfolioContent_FiltersAndCards(t *testing.T) {
	c := catalog.New(catalog.Seed())
	svcs := c.Filter(catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineGoogleCloud})
	data := PortfolioData{
		ActiveLine:    catalog.BusinessLineGoogleCloud,
		Facets:        catalog.BuildFacets(svcs),
		SelectedTypes: map[string]bool{"Propio": true},
		MinRating:     4,
		Services:      svcs,
	}
	body := render(t, PortfolioContent(data))
	assertContains(t, body,
		"Servi+ Workspace Support Services",
		`href="/services/workspace-support"`,
		`value="Propio" checked`,
		`value="4" checked`,
		"Limpiar Todo",
		"Productos Propios",
	)
}

func TestServiceDetailContent_QuoteGate(t *testing.T) {
	s := catalog.Service{ID: "svc", Name: "Soporte", BusinessLine: catalog.BusinessLineAWS}

	body := render(t, ServiceDetailContent(ServiceDetailData{Service: s}))
	assertContains(t, body, "Falta información para cotizar.", "No hay documentos disponibles.", "disabled")

	body = render(t, ServiceDetailContent(ServiceDetailData{Service: s, CanQuote: true, Confirming: true}))
	assertContains(t, body, "Continuar al Cotizador", `href="/services/svc/quote"`)
	if strings.Contains(body, "Falta información para cotizar.") {
		t.Error("quote gate message shown for a quotable service")
	}
}

func TestServiceDetailContent_RejectsUnsafeURLs(t *testing.T) {
	s := catalog.Service{ID: "svc", Name: "Soporte", DriveFolderURL: "javascript:alert(1)"}
	body := render(t, ServiceDetailContent(ServiceDetailData{Service: s, CanQuote: true}))
	if strings.Contains(body, "javascript:") {
		t.Error("unsafe drive URL was rendered")
	}
}

func quoterFixture(t *testing.T) QuoterData {
	t.Helper()
	rule := &catalog.PricingRule{
		ServiceID: "svc",
		Plans:     []catalog.PricingPlan{{Name: catalog.PlanBasic, Cost: 5, Price: 8}},
		Addons:    []catalog.Addon{{ID: "a1", Name: "Seguridad", Cost: 2, Price: 4}},
	}
	draft := services.QuoteDraft{PlanName: catalog.PlanBasic, Licenses: 10, SelectedAddons: []string{"a1"}, Discount: 25, CustomerName: "Acme"}
	b, err := services.ComputeBreakdown(rule, draft)
	if err != nil {
		t.Fatalf("ComputeBreakdown() error = %v", err)
	}
	return QuoterData{
		Service:   catalog.Service{ID: "svc", Name: "Soporte"},
		Rule:      rule,
		Draft:     draft,
		Breakdown: b,
	}
}

func TestQuoterContent(t *testing.T) {
	body := render(t, QuoterContent(quoterFixture(t)))
	assertContains(t, body,
		"Generador de Cotizaciones",
		`value="Acme"`,
		`value="Básico" checked`,
		`value="a1" checked`,
		"Plan: Básico",
		"Add-on: Seguridad",
		"Descuento (25%)",
		"-$30.00",
		"$90.00",
		"Aprobación de Gerencia Comercial",
		"margin-healthy",
		"Crear y Exportar PDF",
	)
}

func TestQuoterContent_States(t *testing.T) {
	data := quoterFixture(t)
	data.Duplicating = true
	data.Error = "Por favor, ingresa el nombre del cliente."
	body := render(t, QuoterContent(data))
	assertContains(t, body, "Duplicar Cotización", "Guardar y Generar PDF", "Por favor, ingresa el nombre del cliente.")

	data.Generating = true
	body = render(t, QuoterContent(data))
	assertContains(t, body, "Generando...", "disabled")

	body = render(t, QuoterContent(QuoterData{Service: data.Service, PricingMissing: true}))
	assertContains(t, body, "La información de precios no está disponible para este servicio.")
	if strings.Contains(body, "quoter-form") {
		t.Error("form rendered without pricing")
	}
}

func TestMyQuotesContent(t *testing.T) {
	body := render(t, MyQuotesContent(MyQuotesData{}))
	assertContains(t, body, "Aún no tienes cotizaciones", "Navega al portafolio para empezar a generar tu primera cotización.")

	data := MyQuotesData{Listings: []services.QuoteListing{
		{Quote: services.Quote{ID: "q1", ServiceName: "Soporte", CustomerName: "Acme", PlanName: catalog.PlanBasic, Licenses: 10}, Actionable: true},
		{Quote: services.Quote{ID: "q2", ServiceName: "Retirado", CustomerName: "Beta", PlanName: catalog.PlanPremium, Licenses: 2}},
	}}
	body = render(t, MyQuotesContent(data))
	assertContains(t, body,
		`hx-post="/quotes/q1/duplicate">`,
		`hx-post="/quotes/q2/duplicate" disabled>`,
		"(Servicio no disponible)",
		"Exportar Excel",
	)
}

func TestAddProductContent_KeepsValues(t *testing.T) {
	data := AddProductData{
		Form: catalog.NewProduct{
			Name:         "Migración",
			BusinessLine: catalog.BusinessLineAWS,
			ProductType:  catalog.ProductTypeRepresented,
			Documents:    []catalog.NewDocument{{Name: "One Pager", Type: catalog.DocumentPPT, URL: "https://example.com/a"}},
		},
		Error: "Por favor completa los campos obligatorios del servicio.",
	}
	body := render(t, AddProductContent(data))
	assertContains(t, body,
		`value="Migración"`,
		`value="AWS" selected`,
		`value="Representado" selected`,
		`value="PPT" selected`,
		"Por favor completa los campos obligatorios del servicio.",
	)
	if n := strings.Count(body, `name="doc_name"`); n != DocumentSlots {
		t.Errorf("got %d document rows, want %d", n, DocumentSlots)
	}
}
