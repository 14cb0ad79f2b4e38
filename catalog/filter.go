package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PortfolioFilter narrows the portfolio. Empty sets match everything.
type PortfolioFilter struct {
	BusinessLine BusinessLine
	Search       string
	ProductTypes map[ProductType]bool
	Categories   map[string]bool
	MinRating    int
}

// Filter returns the services of the filter's business line that match every
// other criterion, preserving catalog order.
func (c *Catalog) Filter(f PortfolioFilter) []Service {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(f.Search))

	var out []Service
	for _, s := range c.Services() {
		if f.BusinessLine != "" && s.BusinessLine != f.BusinessLine {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(s.Name), needle) {
			continue
		}
		if len(f.ProductTypes) > 0 && !f.ProductTypes[s.ProductType] {
			continue
		}
		if len(f.Categories) > 0 && !f.Categories[s.Category] {
			continue
		}
		if s.Rating < f.MinRating {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FacetCount is one checkbox in the filter sidebar.
type FacetCount struct {
	Value string
	Count int
}

type Facets struct {
	ProductTypes []FacetCount
	Categories   []FacetCount
}

// BuildFacets counts product types and categories across services, sorted
// with Spanish collation.
func BuildFacets(services []Service) Facets {
	types := map[string]int{}
	categories := map[string]int{}
	for _, s := range services {
		types[string(s.ProductType)]++
		categories[s.Category]++
	}
	return Facets{
		ProductTypes: sortedCounts(types),
		Categories:   sortedCounts(categories),
	}
}

func sortedCounts(m map[string]int) []FacetCount {
	out := make([]FacetCount, 0, len(m))
	for k, v := range m {
		out = append(out, FacetCount{Value: k, Count: v})
	}
	col := collate.New(language.Spanish)
	sort.Slice(out, func(i, j int) bool {
		return col.CompareString(out[i].Value, out[j].Value) < 0
	})
	return out
}
