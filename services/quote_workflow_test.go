package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"serviceplus/catalog"
)

// blockingRenderer blocks until release is closed, then returns result/err.
type blockingRenderer struct {
	started chan struct{}
	release chan struct{}
	err     error
	calls   int
	mu      sync.Mutex
}

func (b *blockingRenderer) Render(ctx context.Context, svc catalog.Service, _ Breakdown, customer string, _ time.Time) (*DocumentArtifact, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.started != nil {
		close(b.started)
	}
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return nil, b.err
	}
	return &DocumentArtifact{Filename: QuoteFilename(customer, svc.Name), Content: []byte("%PDF-1.3"), PageCount: 1}, nil
}

func newTestWorkflow(t *testing.T, kv KeyValueStore, r DocumentRenderer) (*QuoteWorkflow, *QuoteStore) {
	t.Helper()
	store, err := NewQuoteStore(context.Background(), kv)
	if err != nil {
		t.Fatal(err)
	}
	return NewQuoteWorkflow(testCatalog(), store, r), store
}

func exportDraft() QuoteDraft {
	return QuoteDraft{
		PlanName:       catalog.PlanBasic,
		Licenses:       10,
		SelectedAddons: []string{"a1"},
		Discount:       25,
		CustomerName:   "Acme Corp",
	}
}

func TestExport_RecordsQuoteAfterRender(t *testing.T) {
	w, store := newTestWorkflow(t, NewMemoryKV(), &blockingRenderer{})
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	res, err := w.Export(context.Background(), "s1", "svc", exportDraft(), now)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Artifact.Filename != "Propuesta_Acme_Corp_Soporte_Workspace.pdf" {
		t.Errorf("Filename = %q", res.Artifact.Filename)
	}
	if !floatClose(res.Breakdown.FinalPrice, 90) {
		t.Errorf("FinalPrice = %v", res.Breakdown.FinalPrice)
	}

	all := store.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(all))
	}
	q := all[0]
	if q.ID != res.Quote.ID || q.ServiceName != "Soporte Workspace" || q.CustomerName != "Acme Corp" ||
		q.PlanName != catalog.PlanBasic || q.Licenses != 10 || q.Discount != 25 || !q.CreatedAt.Equal(now) {
		t.Errorf("unexpected quote %+v", q)
	}
	if w.IsGenerating("s1") {
		t.Error("session should be released after export")
	}
}

func TestExport_NormalizesRecordedInputs(t *testing.T) {
	w, store := newTestWorkflow(t, NewMemoryKV(), &blockingRenderer{})
	d := exportDraft()
	d.Licenses = 0
	d.Discount = -3
	d.SelectedAddons = []string{"a2", "bogus", "a1"}

	if _, err := w.Export(context.Background(), "s", "svc", d, time.Now()); err != nil {
		t.Fatal(err)
	}
	q := store.All()[0]
	if q.Licenses != 1 || q.Discount != 0 {
		t.Errorf("licenses/discount not normalized: %+v", q)
	}
	if len(q.SelectedAddons) != 2 || q.SelectedAddons[0] != "a1" || q.SelectedAddons[1] != "a2" {
		t.Errorf("SelectedAddons = %v", q.SelectedAddons)
	}
}

func TestExport_FailuresRecordNothing(t *testing.T) {
	tests := []struct {
		name      string
		serviceID string
		draft     func() QuoteDraft
		renderErr error
		wantErr   error
	}{
		{"unknown service", "gone", exportDraft, nil, ErrNotFound},
		{"no pricing", "other", exportDraft, nil, ErrMissingPricingData},
		{"invalid discount", "svc", func() QuoteDraft { d := exportDraft(); d.Discount = 120; return d }, nil, ErrInvalidDiscount},
		{"validation", "svc", exportDraft, ErrValidation, ErrValidation},
		{"render failure", "svc", exportDraft, ErrRenderFailure, ErrRenderFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, store := newTestWorkflow(t, NewMemoryKV(), &blockingRenderer{err: tt.renderErr})
			res, err := w.Export(context.Background(), "s", tt.serviceID, tt.draft(), time.Now())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if res != nil {
				t.Error("expected no result")
			}
			if len(store.All()) != 0 {
				t.Error("nothing should be recorded")
			}
			if w.IsGenerating("s") {
				t.Error("session must be released after a failure")
			}
		})
	}
}

func TestExport_PersistFailureKeepsDocument(t *testing.T) {
	kv := &failingKV{MemoryKV: NewMemoryKV(), failWrites: true}
	w, store := newTestWorkflow(t, kv, &blockingRenderer{})

	res, err := w.Export(context.Background(), "s", "svc", exportDraft(), time.Now())
	if !errors.Is(err, ErrPersistFailed) {
		t.Fatalf("error = %v, want ErrPersistFailed", err)
	}
	if res == nil || res.Artifact == nil {
		t.Fatal("document should still be returned")
	}
	if res.Quote.ID != "" || len(store.All()) != 0 {
		t.Error("no quote should be recorded when the write fails")
	}
}

func TestExport_RejectsConcurrentExportForSession(t *testing.T) {
	r := &blockingRenderer{started: make(chan struct{}), release: make(chan struct{})}
	w, store := newTestWorkflow(t, NewMemoryKV(), r)

	done := make(chan error, 1)
	go func() {
		_, err := w.Export(context.Background(), "s1", "svc", exportDraft(), time.Now())
		done <- err
	}()
	<-r.started

	if !w.IsGenerating("s1") {
		t.Error("IsGenerating(s1) should be true while rendering")
	}
	if _, err := w.Export(context.Background(), "s1", "svc", exportDraft(), time.Now()); !errors.Is(err, ErrExportInProgress) {
		t.Errorf("second export error = %v, want ErrExportInProgress", err)
	}

	close(r.release)
	if err := <-done; err != nil {
		t.Fatalf("first export error = %v", err)
	}
	if len(store.All()) != 1 {
		t.Errorf("expected exactly 1 quote, got %d", len(store.All()))
	}
	if r.calls != 1 {
		t.Errorf("renderer called %d times, want 1", r.calls)
	}
}

func TestPreview(t *testing.T) {
	w, _ := newTestWorkflow(t, NewMemoryKV(), &blockingRenderer{})

	svc, b, err := w.Preview("svc", exportDraft())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if svc.ID != "svc" || !floatClose(b.TotalPrice, 120) {
		t.Errorf("Preview() = %+v, %+v", svc, b)
	}
	if _, _, err := w.Preview("gone", exportDraft()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Preview(gone) error = %v", err)
	}
}
