package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"serviceplus/catalog"
	"serviceplus/templates"
)

func TestGetSessionID_NotInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetSessionID(req); got != "" {
		t.Errorf("expected empty session, got %q", got)
	}
}

func TestGetNavData_FallsBackToPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	if got := GetNavData(req); got.ActivePath != "/quotes" || got.QuoteCount != 0 {
		t.Errorf("unexpected nav data %+v", got)
	}

	nav := templates.NavData{ActivePath: "/portfolio", QuoteCount: 2}
	req = req.WithContext(context.WithValue(req.Context(), NavDataKey, nav))
	if got := GetNavData(req); got != nav {
		t.Errorf("GetNavData() = %+v, want %+v", got, nav)
	}
}

func TestSessionMiddleware_IssuesCookie(t *testing.T) {
	app, env := newTestEnv(t)
	recordQuote(t, env, serviceQuote("workspace-support"))

	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := SessionMiddleware(env)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	sessionID := GetSessionID(e.Request)
	if _, err := uuid.Parse(sessionID); err != nil {
		t.Fatalf("session id %q is not a uuid", sessionID)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != sessionID || !cookie.HttpOnly {
		t.Errorf("unexpected session cookie %+v", cookie)
	}

	nav := GetNavData(e.Request)
	if nav.ActivePath != "/portfolio" || nav.QuoteCount != 1 {
		t.Errorf("unexpected nav data %+v", nav)
	}
}

func TestSessionMiddleware_CookieHandling(t *testing.T) {
	app, env := newTestEnv(t)
	existing := uuid.NewString()

	tests := []struct {
		name      string
		cookie    string
		keep      bool
		setCookie bool
	}{
		{"valid cookie is kept", existing, true, false},
		{"malformed cookie is replaced", "not-a-uuid", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: sessionCookie, Value: tt.cookie})
			rec := httptest.NewRecorder()
			e := newTestRequestEvent(app, req, rec)

			_ = SessionMiddleware(env)(e)

			got := GetSessionID(e.Request)
			if (got == tt.cookie) != tt.keep {
				t.Errorf("session = %q, cookie %q, keep = %v", got, tt.cookie, tt.keep)
			}
			if set := len(rec.Result().Cookies()) > 0; set != tt.setCookie {
				t.Errorf("cookie set = %v, want %v", set, tt.setCookie)
			}
		})
	}
}

func TestParsePortfolioFilter(t *testing.T) {
	tests := []struct {
		query string
		want  catalog.PortfolioFilter
	}{
		{"", catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineGoogleCloud}},
		{"line=AWS&q=+datos+", catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineAWS, Search: "datos"}},
		{"line=Azure&rating=9", catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineGoogleCloud}},
		{"rating=abc", catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineGoogleCloud}},
		{"rating=4", catalog.PortfolioFilter{BusinessLine: catalog.BusinessLineGoogleCloud, MinRating: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ParsePortfolioFilter(httptest.NewRequest(http.MethodGet, "/portfolio?"+tt.query, nil))
			if got.BusinessLine != tt.want.BusinessLine || got.Search != tt.want.Search || got.MinRating != tt.want.MinRating {
				t.Errorf("ParsePortfolioFilter(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
			if len(got.ProductTypes) != 0 || len(got.Categories) != 0 {
				t.Errorf("unexpected sets %+v", got)
			}
		})
	}
}

func TestParsePortfolioFilter_Sets(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/portfolio?type=Propio&type=Representado&category=IA&category=", nil)
	got := ParsePortfolioFilter(req)
	if !got.ProductTypes[catalog.ProductTypeOwn] || !got.ProductTypes[catalog.ProductTypeRepresented] {
		t.Errorf("product types = %v", got.ProductTypes)
	}
	if len(got.Categories) != 1 || !got.Categories["IA"] {
		t.Errorf("categories = %v", got.Categories)
	}
	if sel := selectedSet(got.ProductTypes); !sel["Propio"] || len(sel) != 2 {
		t.Errorf("selectedSet() = %v", sel)
	}
}
