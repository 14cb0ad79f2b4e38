package handlers

import (
	"net/http"
	"strings"

	"github.com/spf13/cast"

	"serviceplus/catalog"
)

// ParsePortfolioFilter reads the business-line tab and the filter sidebar
// from the query string. An unknown tab falls back to the first business
// line and a malformed rating is ignored.
func ParsePortfolioFilter(r *http.Request) catalog.PortfolioFilter {
	q := r.URL.Query()

	f := catalog.PortfolioFilter{
		BusinessLine: catalog.BusinessLines[0],
		Search:       strings.TrimSpace(q.Get("q")),
	}
	for _, l := range catalog.BusinessLines {
		if string(l) == q.Get("line") {
			f.BusinessLine = l
		}
	}

	for _, t := range q["type"] {
		if f.ProductTypes == nil {
			f.ProductTypes = map[catalog.ProductType]bool{}
		}
		f.ProductTypes[catalog.ProductType(t)] = true
	}
	for _, c := range q["category"] {
		if c == "" {
			continue
		}
		if f.Categories == nil {
			f.Categories = map[string]bool{}
		}
		f.Categories[c] = true
	}

	if rating, err := cast.ToIntE(q.Get("rating")); err == nil && rating > 0 && rating <= 5 {
		f.MinRating = rating
	}
	return f
}

// selectedSet turns filter sets into the string-keyed form the sidebar
// template checks against.
func selectedSet[K ~string](m map[K]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, on := range m {
		if on {
			out[string(k)] = true
		}
	}
	return out
}
