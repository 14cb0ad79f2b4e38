package templates

import (
	"github.com/a-h/templ"

	"serviceplus/catalog"
)

type ServiceDetailData struct {
	Service     catalog.Service
	Documents   []catalog.SalesDocument
	CaseStudies []catalog.CaseStudy
	Experts     []catalog.Expert
	CanQuote    bool
	Confirming  bool
}

func (d ServiceDetailData) hasSalesMaterial() bool {
	return d.Service.DriveFolderURL != "" || len(d.Documents) > 0
}

// imageURL drops sources the templ URL sanitizer rejects.
func imageURL(u string) string {
	return string(templ.URL(u))
}
