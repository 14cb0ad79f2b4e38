package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"serviceplus/catalog"
)

// QuotesKey is the store key holding the JSON array of quotes.
const QuotesKey = "gtm-quotes"

const DefaultRecentLimit = 4

var (
	ErrCorruptState     = errors.New("stored quotes are unreadable")
	ErrStoreUnavailable = errors.New("stored quotes could not be read")
	ErrNotFound         = errors.New("not found")
	ErrPersistFailed    = errors.New("could not persist quotes")
)

// Quote is an immutable snapshot of an exported quote. ServiceName and
// PlanName are copied at export time so the record survives catalog changes.
type Quote struct {
	ID             string           `json:"id"`
	ServiceID      string           `json:"serviceId"`
	ServiceName    string           `json:"serviceName"`
	CustomerName   string           `json:"customerName"`
	PlanName       catalog.PlanName `json:"planName"`
	Licenses       int              `json:"licenses"`
	SelectedAddons []string         `json:"selectedAddons"`
	Discount       float64          `json:"discount"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// QuoteInput is a quote before it gets an id and timestamp.
type QuoteInput struct {
	ServiceID      string
	ServiceName    string
	CustomerName   string
	PlanName       catalog.PlanName
	Licenses       int
	SelectedAddons []string
	Discount       float64
}

// QuoteStore is the most-recent-first quote history backed by a
// KeyValueStore.
type QuoteStore struct {
	kv    KeyValueStore
	newID func() string

	mu     sync.RWMutex
	loaded bool
	quotes []Quote
}

// NewQuoteStore loads the history from kv and always returns a usable store.
// A value that does not parse is replaced by an empty history and reported as
// ErrCorruptState. A failed read is reported as ErrStoreUnavailable; the
// store then retries the load before its first write and refuses to write
// while the persisted history is still unknown.
func NewQuoteStore(ctx context.Context, kv KeyValueStore) (*QuoteStore, error) {
	s := &QuoteStore{kv: kv, newID: uuid.NewString}
	err := s.load(ctx)
	switch {
	case errors.Is(err, ErrCorruptState):
		log.WithError(err).WithField("key", QuotesKey).Error("quotes: unreadable value, starting with empty history")
	case err != nil:
		log.WithError(err).WithField("key", QuotesKey).Error("quotes: load failed, will retry before the next write")
	}
	return s, err
}

// load reads the persisted history. Callers hold mu or own s exclusively.
func (s *QuoteStore) load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, QuotesKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	s.loaded = true
	s.quotes = nil
	if !ok || raw == "" {
		return nil
	}
	var quotes []Quote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	s.quotes = quotes
	return nil
}

// Append records a new quote at the head of the history. The new list is
// written first and the in-memory history only changes once the write
// succeeded, so a failed write leaves both sides as they were. A history that
// could not be read yet is loaded first; if that still fails nothing is
// written, so the persisted quotes are never overwritten blind.
func (s *QuoteStore) Append(ctx context.Context, in QuoteInput, now time.Time) (Quote, error) {
	q := Quote{
		ID:             s.newID(),
		ServiceID:      in.ServiceID,
		ServiceName:    in.ServiceName,
		CustomerName:   in.CustomerName,
		PlanName:       in.PlanName,
		Licenses:       in.Licenses,
		SelectedAddons: append([]string{}, in.SelectedAddons...),
		Discount:       in.Discount,
		CreatedAt:      now.UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.load(ctx); err != nil && !errors.Is(err, ErrCorruptState) {
			log.WithError(err).WithField("quote_id", q.ID).Error("quotes: history still unreadable, not writing")
			return Quote{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		}
	}

	next := make([]Quote, 0, len(s.quotes)+1)
	next = append(next, q)
	next = append(next, s.quotes...)

	raw, err := json.Marshal(next)
	if err != nil {
		return Quote{}, fmt.Errorf("%w: encode: %v", ErrPersistFailed, err)
	}
	if err := s.kv.Set(ctx, QuotesKey, string(raw)); err != nil {
		log.WithError(err).WithField("quote_id", q.ID).Error("quotes: write failed")
		return Quote{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	s.quotes = next

	log.WithFields(log.Fields{
		"quote_id":   q.ID,
		"service_id": q.ServiceID,
		"customer":   q.CustomerName,
	}).Info("quotes: recorded")
	return q, nil
}

// All returns a copy of the history, most recent first.
func (s *QuoteStore) All() []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Quote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

func (s *QuoteStore) FindByID(id string) (Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// ForService returns the quotes made for one service, most recent first.
func (s *QuoteStore) ForService(serviceID string) []Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Quote
	for _, q := range s.quotes {
		if q.ServiceID == serviceID {
			out = append(out, q)
		}
	}
	return out
}

// Duplicate rebuilds a draft from a recorded quote. The plan is matched by
// name against the service's current pricing and falls back to the first
// plan when the name is gone. A service that no longer exists yields
// ErrNotFound.
func Duplicate(q Quote, c *catalog.Catalog) (QuoteDraft, error) {
	if _, ok := c.ServiceByID(q.ServiceID); !ok {
		return QuoteDraft{}, fmt.Errorf("%w: service %q", ErrNotFound, q.ServiceID)
	}
	rule := c.PricingRuleFor(q.ServiceID)
	if rule == nil || len(rule.Plans) == 0 {
		return QuoteDraft{}, fmt.Errorf("%w: service %q", ErrMissingPricingData, q.ServiceID)
	}

	plan := rule.Plans[0].Name
	if p, ok := rule.Plan(q.PlanName); ok {
		plan = p.Name
	}
	return QuoteDraft{
		PlanName:       plan,
		Licenses:       q.Licenses,
		SelectedAddons: append([]string{}, q.SelectedAddons...),
		Discount:       q.Discount,
		CustomerName:   q.CustomerName,
	}, nil
}

// ListRecentlyQuotedServices returns the distinct services of the given
// quotes in order of first appearance, skipping services no longer in the
// catalog, capped at limit.
func ListRecentlyQuotedServices(quotes []Quote, c *catalog.Catalog, limit int) []catalog.Service {
	if limit <= 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []catalog.Service
	for _, q := range quotes {
		if seen[q.ServiceID] {
			continue
		}
		seen[q.ServiceID] = true
		svc, ok := c.ServiceByID(q.ServiceID)
		if !ok {
			continue
		}
		out = append(out, svc)
		if len(out) == limit {
			break
		}
	}
	return out
}

// QuoteListing is a quote as shown in the history view. Quotes whose service
// was removed stay listed but are not Actionable.
type QuoteListing struct {
	Quote      Quote
	Actionable bool
	AddonNames []string
}

func BuildListings(quotes []Quote, c *catalog.Catalog) []QuoteListing {
	out := make([]QuoteListing, 0, len(quotes))
	for _, q := range quotes {
		_, ok := c.ServiceByID(q.ServiceID)
		out = append(out, QuoteListing{
			Quote:      q,
			Actionable: ok,
			AddonNames: addonNames(c.PricingRuleFor(q.ServiceID), q.SelectedAddons),
		})
	}
	return out
}

// addonNames resolves add-on ids to names, keeping the id when the add-on is
// no longer offered.
func addonNames(rule *catalog.PricingRule, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := id
		if rule != nil {
			for _, a := range rule.Addons {
				if a.ID == id {
					name = a.Name
					break
				}
			}
		}
		names = append(names, name)
	}
	return names
}
