// Package catalog holds the service portfolio and its sales-enablement
// material: services, documents, case studies, experts and pricing rules.
package catalog

type BusinessLine string

const (
	BusinessLineGoogleCloud BusinessLine = "Google Cloud"
	BusinessLineAWS         BusinessLine = "AWS"
)

// BusinessLines lists the portfolio tabs in display order.
var BusinessLines = []BusinessLine{BusinessLineGoogleCloud, BusinessLineAWS}

type ProductType string

const (
	ProductTypeOwn         ProductType = "Propio"
	ProductTypeRepresented ProductType = "Representado"
)

// Label returns the filter label shown for the product type.
func (p ProductType) Label() string {
	if p == ProductTypeOwn {
		return "Productos Propios"
	}
	return "Productos Representados"
}

type DocumentType string

const (
	DocumentPDF DocumentType = "PDF"
	DocumentPPT DocumentType = "PPT"
	DocumentDOC DocumentType = "DOC"
)

type PlanName string

const (
	PlanBasic       PlanName = "Básico"
	PlanOperational PlanName = "Operativo"
	PlanPremium     PlanName = "Premium"
)

type Benefit struct {
	Title       string
	Description string
}

// Service is a catalog offering. Services are never mutated after creation.
type Service struct {
	ID             string
	Name           string
	Description    string
	BusinessLine   BusinessLine
	ProductType    ProductType
	Category       string
	Rating         int
	DriveFolderURL string
	KeyBenefits    []Benefit
}

type SalesDocument struct {
	ID        string
	ServiceID string
	Name      string
	Type      DocumentType
	URL       string
}

type CaseStudy struct {
	ID        string
	ServiceID string
	Title     string
	Summary   string
	ImageURL  string
}

type Expert struct {
	ID        string
	ServiceID string
	Name      string
	Role      string
	Email     string
	ImageURL  string
}

type PricingPlan struct {
	Name  PlanName
	Cost  float64
	Price float64
}

type Addon struct {
	ID    string
	Name  string
	Cost  float64
	Price float64
}

// PricingRule is the reference pricing for one service.
type PricingRule struct {
	ServiceID string
	Plans     []PricingPlan
	Addons    []Addon
}

// Plan returns the plan with the given name.
func (r *PricingRule) Plan(name PlanName) (PricingPlan, bool) {
	for _, p := range r.Plans {
		if p.Name == name {
			return p, true
		}
	}
	return PricingPlan{}, false
}

// HasAddon reports whether the rule offers an addon with the given id.
func (r *PricingRule) HasAddon(id string) bool {
	for _, a := range r.Addons {
		if a.ID == id {
			return true
		}
	}
	return false
}
