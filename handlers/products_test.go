package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"serviceplus/catalog"
	"serviceplus/testhelpers"
)

func productForm() url.Values {
	return url.Values{
		"name":                {"Migración de Correo"},
		"description":         {"Migramos tu correo a la nube."},
		"business_line":       {string(catalog.BusinessLineAWS)},
		"product_type":        {string(catalog.ProductTypeOwn)},
		"category":            {"Migración"},
		"doc_name":            {"Ficha Técnica", ""},
		"doc_type":            {string(catalog.DocumentPDF), string(catalog.DocumentPDF)},
		"doc_url":             {"https://example.com/ficha.pdf", ""},
		"benefit_title":       {"Rapidez", ""},
		"benefit_description": {"En una semana.", ""},
		"expert_name":         {"Ana Ruiz"},
		"expert_email":        {"ana@example.com"},
	}
}

func TestHandleProductNew(t *testing.T) {
	app, env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/products/new", nil)
	rec := httptest.NewRecorder()
	if err := HandleProductNew(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Agregar Nuevo Producto",
		`value="Google Cloud" selected`,
		"Guardar Producto",
	)
}

func TestHandleProductSave_Success(t *testing.T) {
	app, env := newTestEnv(t)

	req := postForm("/products", productForm())
	rec := httptest.NewRecorder()
	if err := HandleProductSave(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d: %s", rec.Code, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/services/new-service-") {
		t.Fatalf("Location = %q", loc)
	}

	id := strings.TrimPrefix(loc, "/services/")
	svc, ok := env.Catalog.ServiceByID(id)
	if !ok {
		t.Fatalf("service %q was not added", id)
	}
	if svc.Name != "Migración de Correo" || svc.BusinessLine != catalog.BusinessLineAWS {
		t.Errorf("unexpected service %+v", svc)
	}
	if len(svc.KeyBenefits) != 1 {
		t.Errorf("expected the blank benefit row to be skipped, got %v", svc.KeyBenefits)
	}
	if docs := env.Catalog.DocumentsFor(id); len(docs) != 1 {
		t.Errorf("expected 1 document, got %d", len(docs))
	}
	if experts := env.Catalog.ExpertsFor(id); len(experts) != 1 || experts[0].Name != "Ana Ruiz" {
		t.Errorf("unexpected experts %+v", experts)
	}
}

func TestHandleProductSave_HTMXRedirect(t *testing.T) {
	app, env := newTestEnv(t)

	req := postForm("/products", productForm())
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	if err := HandleProductSave(env)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if redirect := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(redirect, "/services/new-service-") {
		t.Errorf("HX-Redirect = %q", redirect)
	}
}

func TestHandleProductSave_Invalid(t *testing.T) {
	app, env := newTestEnv(t)
	before := len(env.Catalog.Services())

	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing name", "name", "  "},
		{"missing category", "category", ""},
		{"bad expert email", "expert_email", "not-an-email"},
		{"bad document url", "doc_url", "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := productForm()
			form.Set(tt.field, tt.value)
			req := postForm("/products", form)
			req.Header.Set("HX-Request", "true")
			rec := httptest.NewRecorder()
			if err := HandleProductSave(env)(newTestRequestEvent(app, req, rec)); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rec.Code)
			}
			if rec.Header().Get("HX-Redirect") != "" {
				t.Error("expected no redirect")
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), msgProductIncomplete, "Migramos tu correo a la nube.")
		})
	}

	if got := len(env.Catalog.Services()); got != before {
		t.Errorf("catalog grew from %d to %d services", before, got)
	}
}
