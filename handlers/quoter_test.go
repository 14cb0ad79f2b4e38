package handlers

import (
	"bytes"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"serviceplus/catalog"
	"serviceplus/collections"
	"serviceplus/services"
	"serviceplus/testhelpers"
)

func TestHandleQuoter_Defaults(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/services/workspace-support/quote", nil)
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoter(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Generador de Cotizaciones",
		`value="Básico" checked`,
		`name="licenses" min="1" value="10"`,
		"Plan: Básico",
		"$80.00",
		"No requiere aprobación",
		"Crear y Exportar PDF",
	)
}

func TestHandleQuoter_Prefilled(t *testing.T) {
	app, env := newTestEnv(t)

	q := url.Values{
		"duplicate": {"1"},
		"customer":  {"Acme"},
		"plan":      {"Premium"},
		"licenses":  {"20"},
		"addon":     {"addon2", "unknown"},
		"discount":  {"55"},
	}
	req := httptest.NewRequest(http.MethodGet, "/services/workspace-support/quote?"+q.Encode(), nil)
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoter(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Duplicar Cotización",
		`value="Acme"`,
		`value="Premium" checked`,
		`value="addon2" checked`,
		"Add-on: Prevención de Pérdida de Datos",
		"Aprobación del CEO",
		"Guardar y Generar PDF",
	)
	testhelpers.AssertHTMLNotContains(t, body, `value="unknown"`)
}

func TestHandleQuoter_InvalidDiscountFallsBack(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/services/workspace-support/quote?discount=abc", nil)
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoter(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") == "" {
		t.Error("expected a warning toast")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Descuento (0%)")
}

func TestHandleQuoter_MissingPricingAndUnknownService(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/services/aws-managed/quote", nil)
	req.SetPathValue("id", "aws-managed")
	rec := httptest.NewRecorder()
	if err := HandleQuoter(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "La información de precios no está disponible para este servicio.")
	testhelpers.AssertHTMLNotContains(t, rec.Body.String(), "quoter-form")

	req = httptest.NewRequest(http.MethodGet, "/services/nope/quote", nil)
	req.SetPathValue("id", "nope")
	rec = httptest.NewRecorder()
	if err := HandleQuoter(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleQuotePreview(t *testing.T) {
	app, env := newTestEnv(t)

	tests := []struct {
		name   string
		id     string
		form   url.Values
		status int
		want   []string
	}{
		{
			name:   "recomputes summary",
			id:     "workspace-support",
			form:   url.Values{"plan": {"Premium"}, "licenses": {"20"}},
			status: http.StatusOK,
			want:   []string{"Plan: Premium", "$360.00", "Total Final (USD)"},
		},
		{
			name:   "non-numeric licenses become one",
			id:     "workspace-support",
			form:   url.Values{"licenses": {"many"}, "discount": {"10"}},
			status: http.StatusOK,
			want:   []string{"$8.00", "$7.20", "Descuento (10%)"},
		},
		{
			name:   "invalid discount",
			id:     "workspace-support",
			form:   url.Values{"discount": {"150"}},
			status: http.StatusBadRequest,
			want:   []string{"El descuento no es válido."},
		},
		{
			name:   "no pricing",
			id:     "aws-managed",
			form:   url.Values{},
			status: http.StatusConflict,
			want:   []string{"La información de precios no está disponible para este servicio."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm("/services/"+tt.id+"/quote/preview", tt.form)
			req.SetPathValue("id", tt.id)
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()
			if err := HandleQuotePreview(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.want...)
		})
	}
}

func exportForm(customer string) url.Values {
	return url.Values{
		"customer": {customer},
		"plan":     {"Básico"},
		"licenses": {"10"},
		"addon":    {"addon1"},
		"discount": {"25"},
	}
}

func TestHandleQuoteExport_Success(t *testing.T) {
	app, env := newTestEnv(t)

	req := postForm("/services/workspace-support/quote/export", exportForm("Acme Corp"))
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoteExport(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	wantDisposition := "attachment; filename=Propuesta_Acme_Corp_Servi+_Workspace_Support_Services.pdf"
	if cd := rec.Header().Get("Content-Disposition"); cd != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", cd, wantDisposition)
	}
	pages, err := api.PageCount(bytes.NewReader(rec.Body.Bytes()), nil)
	if err != nil || pages < 1 {
		t.Errorf("PageCount() = %d, %v", pages, err)
	}

	quotes := env.Store.All()
	if len(quotes) != 1 {
		t.Fatalf("expected 1 recorded quote, got %d", len(quotes))
	}
	q := quotes[0]
	if q.CustomerName != "Acme Corp" || q.PlanName != catalog.PlanBasic || q.Licenses != 10 || q.Discount != 25 {
		t.Errorf("unexpected quote %+v", q)
	}
	if len(q.SelectedAddons) != 1 || q.SelectedAddons[0] != "addon1" {
		t.Errorf("SelectedAddons = %v", q.SelectedAddons)
	}
	if !q.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", q.CreatedAt, testNow)
	}

	record, err := app.FindFirstRecordByFilter(collections.KVEntries, "key = {:key}", map[string]any{"key": services.QuotesKey})
	if err != nil {
		t.Fatalf("quotes were not persisted: %v", err)
	}
	testhelpers.AssertHTMLContains(t, record.GetString("value"), `"customerName":"Acme Corp"`)
}

func TestHandleQuoteExport_FilenameSurvivesSpecialCharacters(t *testing.T) {
	app, env := newTestEnv(t)

	for _, customer := range []string{`Acme "Best" Corp`, "Peña & Hijos", `C:\Clientes; Norte`} {
		t.Run(customer, func(t *testing.T) {
			req := postForm("/services/workspace-support/quote/export", exportForm(customer))
			req.SetPathValue("id", "workspace-support")
			rec := httptest.NewRecorder()
			if err := HandleQuoteExport(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			disposition, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
			if err != nil {
				t.Fatalf("Content-Disposition %q does not parse: %v", rec.Header().Get("Content-Disposition"), err)
			}
			want := services.QuoteFilename(customer, "Servi+ Workspace Support Services")
			if disposition != "attachment" || params["filename"] != want {
				t.Errorf("got %s filename=%q, want attachment filename=%q", disposition, params["filename"], want)
			}
		})
	}
}

func TestHandleQuoteExport_RequiresCustomer(t *testing.T) {
	app, env := newTestEnv(t)

	req := postForm("/services/workspace-support/quote/export", exportForm("   "))
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoteExport(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("no document expected without a customer name")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Por favor, ingresa el nombre del cliente.", `value="addon1" checked`)
	if n := len(env.Store.All()); n != 0 {
		t.Errorf("expected nothing recorded, got %d quotes", n)
	}
}

func TestHandleQuoteExport_PersistFailureStillDelivers(t *testing.T) {
	env := newEnvWithKV(t, readOnlyKV{services.NewMemoryKV()})
	app := testhelpers.NewTestApp(t)

	req := postForm("/services/workspace-support/quote/export", exportForm("Acme"))
	req.SetPathValue("id", "workspace-support")
	rec := httptest.NewRecorder()
	if err := HandleQuoteExport(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want the document anyway", ct)
	}
	_, toast := parseToast(t, rec.Header().Get("HX-Trigger"))
	if toast["type"] != string(ToastWarning) {
		t.Errorf("toast type = %q, want warning", toast["type"])
	}
	if n := len(env.Store.All()); n != 0 {
		t.Errorf("expected nothing recorded, got %d quotes", n)
	}
}

func TestHandleQuoteExport_Errors(t *testing.T) {
	app, env := newTestEnv(t)

	tests := []struct {
		name   string
		id     string
		form   url.Values
		status int
	}{
		{"unknown service", "nope", exportForm("Acme"), http.StatusNotFound},
		{"no pricing", "aws-managed", exportForm("Acme"), http.StatusConflict},
		{"bad discount", "workspace-support", url.Values{"customer": {"Acme"}, "discount": {"NaN"}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := postForm("/services/"+tt.id+"/quote/export", tt.form)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			if err := HandleQuoteExport(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if n := len(env.Store.All()); n != 0 {
				t.Errorf("expected nothing recorded, got %d quotes", n)
			}
		})
	}
}
