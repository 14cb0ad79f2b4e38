package templates

import (
	"serviceplus/catalog"
)

// Blank rows offered for repeatable form sections.
const (
	DocumentSlots = 3
	BenefitSlots  = 3
)

type AddProductData struct {
	Form  catalog.NewProduct
	Error string
}

var (
	productTypes  = []catalog.ProductType{catalog.ProductTypeOwn, catalog.ProductTypeRepresented}
	documentTypes = []catalog.DocumentType{catalog.DocumentPDF, catalog.DocumentDOC, catalog.DocumentPPT}
)

// documentRows pads the submitted documents to DocumentSlots rows.
func (d AddProductData) documentRows() []catalog.NewDocument {
	rows := make([]catalog.NewDocument, DocumentSlots)
	copy(rows, d.Form.Documents)
	return rows
}

func (d AddProductData) benefitRows() []catalog.Benefit {
	rows := make([]catalog.Benefit, BenefitSlots)
	copy(rows, d.Form.Benefits)
	return rows
}
