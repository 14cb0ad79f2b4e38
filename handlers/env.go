// Package handlers serves the portal pages and is the only layer that
// commits side effects: exporting a quote, duplicating one and adding a
// product.
package handlers

import (
	"time"

	"serviceplus/catalog"
	"serviceplus/services"
)

// Env is what every handler shares.
type Env struct {
	Catalog     *catalog.Catalog
	Store       *services.QuoteStore
	Workflow    *services.QuoteWorkflow
	RecentLimit int
	Popular     []string
	Now         func() time.Time
}

// NewEnv wires the quote workflow around the catalog and store with the
// default proposal renderer.
func NewEnv(c *catalog.Catalog, store *services.QuoteStore) *Env {
	return &Env{
		Catalog:     c,
		Store:       store,
		Workflow:    services.NewQuoteWorkflow(c, store, services.NewRenderer()),
		RecentLimit: services.DefaultRecentLimit,
		Popular:     catalog.DefaultPopularServices,
		Now:         time.Now,
	}
}

func (env *Env) now() time.Time {
	if env.Now == nil {
		return time.Now()
	}
	return env.Now()
}
