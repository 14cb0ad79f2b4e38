package templates

import (
	"strconv"

	"serviceplus/catalog"
	"serviceplus/services"
)

// QuoterData is the quoter form for one service and its priced draft.
type QuoterData struct {
	Service        catalog.Service
	Rule           *catalog.PricingRule
	Draft          services.QuoteDraft
	Breakdown      services.Breakdown
	PricingMissing bool
	Duplicating    bool
	Generating     bool
	Error          string
}

func (d QuoterData) Title() string {
	if d.Duplicating {
		return "Duplicar Cotización"
	}
	return "Generador de Cotizaciones"
}

func (d QuoterData) SubmitLabel() string {
	switch {
	case d.Generating:
		return "Generando..."
	case d.Duplicating:
		return "Guardar y Generar PDF"
	}
	return "Crear y Exportar PDF"
}

func (d QuoterData) quoteURL(action string) string {
	return serviceURL(d.Service.ID) + "/quote/" + action
}

func (d QuoterData) discountLabel() string {
	return "Descuento (" + formatPercentValue(d.Breakdown.Discount) + "%)"
}

func planID(p catalog.PricingPlan) string {
	return "plan-" + string(p.Name)
}

func marginClass(b services.Breakdown) string {
	return "margin margin-" + string(b.MarginTier)
}

func formatPercentValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var summaryColumns = []string{"Concepto", "Precio Unitario", "Cantidad", "Total"}
