package catalog

import "sync"

// Catalog is the in-process owner of all catalog data. Handlers and the quote
// store receive it explicitly instead of reaching for package state.
type Catalog struct {
	mu          sync.RWMutex
	services    []Service
	documents   []SalesDocument
	caseStudies []CaseStudy
	experts     []Expert
	pricing     map[string]PricingRule
}

// Data is the raw material a Catalog is built from.
type Data struct {
	Services    []Service
	Documents   []SalesDocument
	CaseStudies []CaseStudy
	Experts     []Expert
	Pricing     []PricingRule
}

// New builds a catalog from the given data. When two pricing rules share a
// service id the first one wins.
func New(d Data) *Catalog {
	c := &Catalog{
		services:    append([]Service(nil), d.Services...),
		documents:   append([]SalesDocument(nil), d.Documents...),
		caseStudies: append([]CaseStudy(nil), d.CaseStudies...),
		experts:     append([]Expert(nil), d.Experts...),
		pricing:     make(map[string]PricingRule, len(d.Pricing)),
	}
	for _, r := range d.Pricing {
		if _, exists := c.pricing[r.ServiceID]; exists {
			continue
		}
		c.pricing[r.ServiceID] = r
	}
	return c
}

// Services returns the services in display order (most recently added first).
func (c *Catalog) Services() []Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Service(nil), c.services...)
}

func (c *Catalog) ServiceByID(id string) (Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// PricingRuleFor returns the pricing rule of a service, or nil when the
// service cannot be quoted.
func (c *Catalog) PricingRuleFor(serviceID string) *PricingRule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.pricing[serviceID]
	if !ok {
		return nil
	}
	return &r
}

func (c *Catalog) DocumentsFor(serviceID string) []SalesDocument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []SalesDocument
	for _, d := range c.documents {
		if d.ServiceID == serviceID {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) CaseStudiesFor(serviceID string) []CaseStudy {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []CaseStudy
	for _, cs := range c.caseStudies {
		if cs.ServiceID == serviceID {
			out = append(out, cs)
		}
	}
	return out
}

func (c *Catalog) ExpertsFor(serviceID string) []Expert {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Expert
	for _, e := range c.experts {
		if e.ServiceID == serviceID {
			out = append(out, e)
		}
	}
	return out
}

// HasSalesMaterial reports whether the detail view may offer quoting: the
// service needs at least one document, case study, expert or drive folder.
func (c *Catalog) HasSalesMaterial(s Service) bool {
	if s.DriveFolderURL != "" {
		return true
	}
	return len(c.DocumentsFor(s.ID)) > 0 ||
		len(c.CaseStudiesFor(s.ID)) > 0 ||
		len(c.ExpertsFor(s.ID)) > 0
}

// Popular resolves the given ids in order, skipping unknown ones.
func (c *Catalog) Popular(ids []string) []Service {
	var out []Service
	for _, id := range ids {
		if s, ok := c.ServiceByID(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// add prepends a service with its related material.
func (c *Catalog) add(s Service, expert *Expert, cs *CaseStudy, docs []SalesDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services = append([]Service{s}, c.services...)
	if expert != nil {
		c.experts = append(c.experts, *expert)
	}
	if cs != nil {
		c.caseStudies = append(c.caseStudies, *cs)
	}
	c.documents = append(c.documents, docs...)
}
