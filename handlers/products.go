package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"serviceplus/catalog"
	"serviceplus/templates"
)

const msgProductIncomplete = "Por favor completa los campos obligatorios del servicio."

func renderAddProduct(e *core.RequestEvent, data templates.AddProductData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.AddProductContent(data)
	} else {
		component = templates.AddProductPage(data, GetNavData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

func HandleProductNew(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return renderAddProduct(e, templates.AddProductData{
			Form: catalog.NewProduct{
				BusinessLine: catalog.BusinessLineGoogleCloud,
				ProductType:  catalog.ProductTypeOwn,
			},
		})
	}
}

// productFromForm reads the add-product form. Document and benefit rows left
// completely blank are skipped.
func productFromForm(r *http.Request) catalog.NewProduct {
	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }

	p := catalog.NewProduct{
		Name:         field("name"),
		Description:  field("description"),
		BusinessLine: catalog.BusinessLine(field("business_line")),
		ProductType:  catalog.ProductType(field("product_type")),
		Category:     field("category"),
		ExpertName:   field("expert_name"),
		ExpertEmail:  field("expert_email"),
		CaseTitle:    field("case_title"),
		CaseSummary:  field("case_summary"),
		CaseImageURL: field("case_image_url"),
	}

	names, types, urls := r.Form["doc_name"], r.Form["doc_type"], r.Form["doc_url"]
	for i := range names {
		d := catalog.NewDocument{Name: strings.TrimSpace(names[i])}
		if i < len(types) {
			d.Type = catalog.DocumentType(types[i])
		}
		if i < len(urls) {
			d.URL = strings.TrimSpace(urls[i])
		}
		if d.Name == "" && d.URL == "" {
			continue
		}
		p.Documents = append(p.Documents, d)
	}

	titles, descs := r.Form["benefit_title"], r.Form["benefit_description"]
	for i := range titles {
		b := catalog.Benefit{Title: strings.TrimSpace(titles[i])}
		if i < len(descs) {
			b.Description = strings.TrimSpace(descs[i])
		}
		if b.Title == "" && b.Description == "" {
			continue
		}
		p.Benefits = append(p.Benefits, b)
	}
	return p
}

// HandleProductSave adds the product to the catalog and opens its detail
// page. Products live only as long as the process.
func HandleProductSave(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulario inválido")
		}

		form := productFromForm(e.Request)
		svc, err := env.Catalog.AddProduct(form)
		if errors.Is(err, catalog.ErrInvalidProduct) {
			log.WithError(err).Debug("product_create: rejected form")
			SetToast(e, ToastWarning, msgProductIncomplete)
			return renderAddProduct(e, templates.AddProductData{Form: form, Error: msgProductIncomplete})
		}
		if err != nil {
			log.WithError(err).Error("product_create: could not add product")
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo guardar el producto.")
		}

		log.WithFields(log.Fields{"service_id": svc.ID, "name": svc.Name}).Info("product_create: added")
		SetToast(e, ToastSuccess, "Producto agregado")

		redirectURL := "/services/" + svc.ID
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}
