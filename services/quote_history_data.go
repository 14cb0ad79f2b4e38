package services

import (
	"strings"
	"time"

	"serviceplus/catalog"
)

// QuoteHistoryRow is one quote in the history export.
type QuoteHistoryRow struct {
	QuoteID    string
	CreatedAt  time.Time
	Customer   string
	Service    string
	Plan       string
	Licenses   int
	Addons     string
	Discount   float64
	Approval   string
	FinalPrice float64 // at current list prices
	Priced     bool    // false when the service or its pricing is gone
	Available  bool
}

// QuoteHistoryExport holds all data needed for the history exports.
type QuoteHistoryExport struct {
	Title       string
	GeneratedAt time.Time
	Rows        []QuoteHistoryRow
	TotalFinal  float64
}

const quoteHistoryTitle = "Historial de Cotizaciones"

// BuildQuoteHistoryExport flattens listings for export. Each quote that can
// still be priced is repriced against the current catalog; the history
// itself stores no amounts.
func BuildQuoteHistoryExport(listings []QuoteListing, c *catalog.Catalog, generatedAt time.Time) QuoteHistoryExport {
	data := QuoteHistoryExport{Title: quoteHistoryTitle, GeneratedAt: generatedAt}
	for _, l := range listings {
		q := l.Quote
		r := QuoteHistoryRow{
			QuoteID:   q.ID,
			CreatedAt: q.CreatedAt,
			Customer:  q.CustomerName,
			Service:   q.ServiceName,
			Plan:      string(q.PlanName),
			Licenses:  q.Licenses,
			Addons:    strings.Join(l.AddonNames, ", "),
			Discount:  q.Discount,
			Approval:  ApprovalFor(q.Discount).Label(),
			Available: l.Actionable,
		}
		if l.Actionable {
			b, err := ComputeBreakdown(c.PricingRuleFor(q.ServiceID), QuoteDraft{
				PlanName:       q.PlanName,
				Licenses:       q.Licenses,
				SelectedAddons: q.SelectedAddons,
				Discount:       q.Discount,
			})
			if err == nil {
				r.FinalPrice = b.FinalPrice
				r.Priced = true
				data.TotalFinal += b.FinalPrice
			}
		}
		data.Rows = append(data.Rows, r)
	}
	return data
}

func (r QuoteHistoryRow) StatusLabel() string {
	if r.Available {
		return "Disponible"
	}
	return "Servicio no disponible"
}

func (r QuoteHistoryRow) PriceLabel() string {
	if !r.Priced {
		return "-"
	}
	return FormatUSD(r.FinalPrice)
}
