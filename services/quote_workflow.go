package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"serviceplus/catalog"
)

var ErrExportInProgress = errors.New("a document is already being generated")

// DocumentRenderer is what the workflow needs from the PDF renderer.
type DocumentRenderer interface {
	Render(ctx context.Context, service catalog.Service, b Breakdown, customerName string, generatedAt time.Time) (*DocumentArtifact, error)
}

// ExportResult is a successful export: the document and the recorded quote.
type ExportResult struct {
	Artifact  *DocumentArtifact
	Quote     Quote
	Breakdown Breakdown
}

// QuoteWorkflow ties pricing, rendering and the quote history together. It
// is the only place a quote gets recorded, and only after its document was
// rendered.
type QuoteWorkflow struct {
	catalog  *catalog.Catalog
	store    *QuoteStore
	renderer DocumentRenderer

	mu         sync.Mutex
	generating map[string]bool
}

func NewQuoteWorkflow(c *catalog.Catalog, store *QuoteStore, renderer DocumentRenderer) *QuoteWorkflow {
	return &QuoteWorkflow{
		catalog:    c,
		store:      store,
		renderer:   renderer,
		generating: map[string]bool{},
	}
}

// Preview prices a draft for a service without side effects.
func (w *QuoteWorkflow) Preview(serviceID string, draft QuoteDraft) (catalog.Service, Breakdown, error) {
	svc, ok := w.catalog.ServiceByID(serviceID)
	if !ok {
		return catalog.Service{}, Breakdown{}, fmt.Errorf("%w: service %q", ErrNotFound, serviceID)
	}
	b, err := ComputeBreakdown(w.catalog.PricingRuleFor(serviceID), draft)
	if err != nil {
		return svc, Breakdown{}, err
	}
	return svc, b, nil
}

// IsGenerating reports whether sessionID has an export in flight.
func (w *QuoteWorkflow) IsGenerating(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generating[sessionID]
}

func (w *QuoteWorkflow) begin(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.generating[sessionID] {
		return false
	}
	w.generating[sessionID] = true
	return true
}

func (w *QuoteWorkflow) end(sessionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.generating, sessionID)
}

// Export prices the draft, renders the proposal and records the quote. A
// second export for the same session while one is running fails with
// ErrExportInProgress. Nothing is recorded unless rendering succeeded. If
// only the final write fails the result still carries the document and the
// error wraps ErrPersistFailed.
func (w *QuoteWorkflow) Export(ctx context.Context, sessionID, serviceID string, draft QuoteDraft, now time.Time) (*ExportResult, error) {
	svc, b, err := w.Preview(serviceID, draft)
	if err != nil {
		return nil, err
	}

	if !w.begin(sessionID) {
		return nil, ErrExportInProgress
	}
	defer w.end(sessionID)

	logger := log.WithFields(log.Fields{"service_id": serviceID, "session": sessionID})

	art, err := w.renderer.Render(ctx, svc, b, draft.CustomerName, now)
	if err != nil {
		logger.WithError(err).Warn("quote export: render failed")
		return nil, err
	}

	res := &ExportResult{Artifact: art, Breakdown: b}
	q, err := w.store.Append(ctx, QuoteInput{
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		CustomerName:   draft.CustomerName,
		PlanName:       b.PlanName,
		Licenses:       b.Licenses,
		SelectedAddons: b.SelectedAddons,
		Discount:       b.Discount,
	}, now)
	if err != nil {
		return res, err
	}
	res.Quote = q

	logger.WithFields(log.Fields{
		"quote_id": q.ID,
		"pages":    art.PageCount,
		"approval": b.Approval.String(),
	}).Info("quote export: done")
	return res, nil
}
