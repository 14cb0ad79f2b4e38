package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"serviceplus/testhelpers"
)

func TestHandleMyQuotes_Empty(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	rec := httptest.NewRecorder()
	if err := HandleMyQuotes(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Aún no tienes cotizaciones", "Ir al Portafolio")
	testhelpers.AssertHTMLNotContains(t, body, "Exportar Excel")
}

func TestHandleMyQuotes_Listings(t *testing.T) {
	app, env := newTestEnv(t)
	recordQuote(t, env, serviceQuote("workspace-support"))
	gone := recordQuote(t, env, serviceQuote("gone"))

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleMyQuotes(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"Servicio workspace-support",
		"Generada el: 15 de octubre de 2026",
		"Módulo de Seguridad Avanzada",
		"(Servicio no disponible)",
		"Exportar Excel",
	)
	testhelpers.AssertHTMLNotContains(t, body, "<!doctype html>")

	// Newest first, and the stale row cannot be duplicated.
	goneAt := strings.Index(body, `id="quote-`+gone.ID+`"`)
	if goneAt < 0 || goneAt > strings.Index(body, "Servicio workspace-support") {
		t.Error("expected the newest quote to be listed first")
	}
	goneRow := body[goneAt:]
	goneRow = goneRow[:strings.Index(goneRow, "</li>")]
	if !strings.Contains(goneRow, "disabled") {
		t.Error("expected the stale quote's duplicate button to be disabled")
	}
}

func TestHandleQuoteDuplicate_Redirects(t *testing.T) {
	app, env := newTestEnv(t)
	q := recordQuote(t, env, serviceQuote("workspace-support"))

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+q.ID+"/duplicate", nil)
	req.SetPathValue("id", q.ID)
	rec := httptest.NewRecorder()
	if err := HandleQuoteDuplicate(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	want := "/services/workspace-support/quote?addon=addon1&customer=Acme&discount=25&duplicate=1&licenses=10&plan=B%C3%A1sico"
	if loc := rec.Header().Get("Location"); loc != want {
		t.Errorf("Location = %q, want %q", loc, want)
	}
	if n := len(env.Store.All()); n != 1 {
		t.Errorf("duplicating must not record a quote, got %d quotes", n)
	}
}

func TestHandleQuoteDuplicate_HTMX(t *testing.T) {
	app, env := newTestEnv(t)
	q := recordQuote(t, env, serviceQuote("workspace-support"))

	req := httptest.NewRequest(http.MethodPost, "/quotes/"+q.ID+"/duplicate", nil)
	req.SetPathValue("id", q.ID)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleQuoteDuplicate(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/services/workspace-support/quote?addon=addon1&customer=Acme&discount=25&duplicate=1&licenses=10&plan=B%C3%A1sico")
}

func TestHandleQuoteDuplicate_Errors(t *testing.T) {
	app, env := newTestEnv(t)
	gone := recordQuote(t, env, serviceQuote("gone"))
	unpriced := recordQuote(t, env, serviceQuote("aws-managed"))

	tests := []struct {
		name   string
		id     string
		status int
		want   string
	}{
		{"unknown quote", "missing", http.StatusNotFound, "Cotización no encontrada"},
		{"service removed", gone.ID, http.StatusNotFound, "El servicio asociado a esta cotización ya no existe."},
		{"service without pricing", unpriced.ID, http.StatusConflict, msgPricingMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/quotes/"+tt.id+"/duplicate", nil)
			req.SetPathValue("id", tt.id)
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()
			if err := HandleQuoteDuplicate(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, rec.Code)
			}
			if rec.Header().Get("HX-Redirect") != "" {
				t.Error("expected no redirect")
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), tt.want)
		})
	}
}
