package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var ErrInvalidProduct = errors.New("invalid product")

const (
	defaultCaseStudyImage = "https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&q=80&w=300&h=200"
	newExpertRole         = "Especialista de Producto"
)

// NewDocument is a sales document attached while authoring a product.
type NewDocument struct {
	Name string
	Type DocumentType
	URL  string
}

func (d NewDocument) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Type, validation.Required, validation.In(DocumentPDF, DocumentPPT, DocumentDOC)),
		validation.Field(&d.URL, validation.Required, is.URL),
	)
}

// NewProduct is the add-product form. The expert is created only when both
// name and e-mail are given; the case study only when title and summary are.
type NewProduct struct {
	Name         string
	Description  string
	BusinessLine BusinessLine
	ProductType  ProductType
	Category     string
	Benefits     []Benefit

	ExpertName  string
	ExpertEmail string

	CaseTitle    string
	CaseSummary  string
	CaseImageURL string

	Documents []NewDocument
}

func (p NewProduct) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.BusinessLine, validation.Required, validation.In(BusinessLineGoogleCloud, BusinessLineAWS)),
		validation.Field(&p.ProductType, validation.Required, validation.In(ProductTypeOwn, ProductTypeRepresented)),
		validation.Field(&p.ExpertEmail, is.EmailFormat),
		validation.Field(&p.CaseImageURL, is.URL),
		validation.Field(&p.Documents),
	)
}

// AddProduct validates the form, creates the service and its related
// material, and prepends the service to the catalog.
func (c *Catalog) AddProduct(p NewProduct) (Service, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	if err := p.Validate(); err != nil {
		return Service{}, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	serviceID := "new-service-" + uuid.NewString()

	var benefits []Benefit
	for _, b := range p.Benefits {
		if b.Title != "" && b.Description != "" {
			benefits = append(benefits, b)
		}
	}

	service := Service{
		ID:           serviceID,
		Name:         p.Name,
		Description:  p.Description,
		BusinessLine: p.BusinessLine,
		ProductType:  p.ProductType,
		Category:     p.Category,
		Rating:       0,
		KeyBenefits:  benefits,
	}

	var expert *Expert
	if p.ExpertName != "" && p.ExpertEmail != "" {
		expert = &Expert{
			ID:        "expert-" + uuid.NewString(),
			ServiceID: serviceID,
			Name:      p.ExpertName,
			Role:      newExpertRole,
			Email:     p.ExpertEmail,
			ImageURL:  "https://ui-avatars.com/api/?name=" + url.QueryEscape(p.ExpertName) + "&background=random",
		}
	}

	var caseStudy *CaseStudy
	if p.CaseTitle != "" && p.CaseSummary != "" {
		image := p.CaseImageURL
		if image == "" {
			image = defaultCaseStudyImage
		}
		caseStudy = &CaseStudy{
			ID:        "case-" + uuid.NewString(),
			ServiceID: serviceID,
			Title:     p.CaseTitle,
			Summary:   p.CaseSummary,
			ImageURL:  image,
		}
	}

	docs := make([]SalesDocument, 0, len(p.Documents))
	for _, d := range p.Documents {
		docs = append(docs, SalesDocument{
			ID:        "doc-" + uuid.NewString(),
			ServiceID: serviceID,
			Name:      d.Name,
			Type:      d.Type,
			URL:       d.URL,
		})
	}

	c.add(service, expert, caseStudy, docs)
	return service, nil
}
