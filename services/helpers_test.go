package services

import (
	"bytes"
	"math"

	"serviceplus/catalog"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func floatClose(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// testRule is the rule used by the worked pricing examples: one plan at
// cost 5 / price 8 and one add-on at cost 2 / price 4.
func testRule() *catalog.PricingRule {
	return &catalog.PricingRule{
		ServiceID: "svc",
		Plans: []catalog.PricingPlan{
			{Name: catalog.PlanBasic, Cost: 5, Price: 8},
			{Name: catalog.PlanPremium, Cost: 0, Price: 0},
		},
		Addons: []catalog.Addon{
			{ID: "a1", Name: "Seguridad", Cost: 2, Price: 4},
			{ID: "a2", Name: "Backup", Cost: 1, Price: 3},
		},
	}
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Data{
		Services: []catalog.Service{
			{ID: "svc", Name: "Soporte Workspace", BusinessLine: catalog.BusinessLineGoogleCloud},
			{ID: "other", Name: "Otro Servicio", BusinessLine: catalog.BusinessLineAWS},
			{ID: "third", Name: "Tercero", BusinessLine: catalog.BusinessLineAWS},
		},
		Pricing: []catalog.PricingRule{*testRule()},
	})
}
