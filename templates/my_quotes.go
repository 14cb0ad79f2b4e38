package templates

import (
	"net/url"
	"strconv"
	"strings"

	"serviceplus/services"
)

type MyQuotesData struct {
	Listings []services.QuoteListing
}

func quoteRowID(l services.QuoteListing) string {
	return "quote-" + l.Quote.ID
}

func duplicateURL(l services.QuoteListing) string {
	return "/quotes/" + url.PathEscape(l.Quote.ID) + "/duplicate"
}

func generatedOn(l services.QuoteListing) string {
	return "Generada el: " + services.FormatLongDateES(l.Quote.CreatedAt)
}

// quoteDetails is the one-line plan summary under each listing.
func quoteDetails(l services.QuoteListing) string {
	q := l.Quote
	details := []string{
		"Plan " + string(q.PlanName),
		strconv.Itoa(q.Licenses) + " licencias",
		"Descuento " + formatPercentValue(q.Discount) + "%",
	}
	if len(l.AddonNames) > 0 {
		details = append(details, strings.Join(l.AddonNames, ", "))
	}
	return strings.Join(details, " · ")
}
