package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceplus/catalog"
	"serviceplus/services"
	"serviceplus/testhelpers"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestEnv returns a pocketbase-backed Env over the seed catalog with a
// fixed clock.
func newTestEnv(t *testing.T) (*pocketbase.PocketBase, *Env) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	return app, newEnvWithKV(t, services.NewPocketBaseKV(app))
}

func newEnvWithKV(t *testing.T, kv services.KeyValueStore) *Env {
	t.Helper()
	store, err := services.NewQuoteStore(context.Background(), kv)
	if err != nil {
		t.Fatalf("NewQuoteStore() error = %v", err)
	}
	env := NewEnv(catalog.New(catalog.Seed()), store)
	env.Now = func() time.Time { return testNow }
	return env
}

// readOnlyKV accepts reads and fails every write.
type readOnlyKV struct {
	*services.MemoryKV
}

func (readOnlyKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func recordQuote(t *testing.T, env *Env, in services.QuoteInput) services.Quote {
	t.Helper()
	q, err := env.Store.Append(context.Background(), in, testNow)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	return q
}

func serviceQuote(serviceID string) services.QuoteInput {
	return services.QuoteInput{
		ServiceID:      serviceID,
		ServiceName:    "Servicio " + serviceID,
		CustomerName:   "Acme",
		PlanName:       catalog.PlanBasic,
		Licenses:       10,
		SelectedAddons: []string{"addon1"},
		Discount:       25,
	}
}
