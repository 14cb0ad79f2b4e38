package templates

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"serviceplus/catalog"
)

// PortfolioData is everything the portfolio page shows for one request.
type PortfolioData struct {
	ActiveLine         catalog.BusinessLine
	Search             string
	Facets             catalog.Facets
	SelectedTypes      map[string]bool
	SelectedCategories map[string]bool
	MinRating          int
	Services           []catalog.Service
	Recent             []catalog.Service
	Popular            []catalog.Service
}

// FilterCount is the number of active sidebar filters.
func (d PortfolioData) FilterCount() int {
	n := len(d.SelectedTypes) + len(d.SelectedCategories)
	if d.MinRating > 0 {
		n++
	}
	return n
}

// Rating filter options, best first.
var ratingOptions = []int{4, 3, 2, 1}

func lineURL(line catalog.BusinessLine) string {
	return "/portfolio?" + url.Values{"line": {string(line)}}.Encode()
}

func ratingID(r int) string {
	return "rating-" + strconv.Itoa(r)
}

func ratingLabel(r int) string {
	return fmt.Sprintf("%s %d o más", stars(r), r)
}

func facetCount(f catalog.FacetCount) string {
	return "(" + strconv.Itoa(f.Count) + ")"
}

func ratingAria(n int) string {
	return fmt.Sprintf("%d de 5", n)
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func serviceURL(id string) string {
	return "/services/" + url.PathEscape(id)
}
