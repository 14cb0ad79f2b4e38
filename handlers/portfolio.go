package handlers

import (
	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"serviceplus/catalog"
	"serviceplus/services"
	"serviceplus/templates"
)

// HandlePortfolio renders the portfolio for the selected business line with
// the sidebar filters applied. Facets are counted over the whole tab so the
// checkboxes stay stable while filtering.
func HandlePortfolio(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		f := ParsePortfolioFilter(e.Request)

		tab := env.Catalog.Filter(catalog.PortfolioFilter{BusinessLine: f.BusinessLine})
		data := templates.PortfolioData{
			ActiveLine:         f.BusinessLine,
			Search:             f.Search,
			Facets:             catalog.BuildFacets(tab),
			SelectedTypes:      selectedSet(f.ProductTypes),
			SelectedCategories: selectedSet(f.Categories),
			MinRating:          f.MinRating,
			Services:           env.Catalog.Filter(f),
			Recent:             services.ListRecentlyQuotedServices(env.Store.All(), env.Catalog, env.RecentLimit),
			Popular:            env.Catalog.Popular(env.Popular),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.PortfolioContent(data)
		} else {
			component = templates.PortfolioPage(data, GetNavData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
