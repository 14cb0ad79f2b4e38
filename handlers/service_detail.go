package handlers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"serviceplus/templates"
)

func serviceDetailData(env *Env, id string) (templates.ServiceDetailData, bool) {
	svc, ok := env.Catalog.ServiceByID(id)
	if !ok {
		return templates.ServiceDetailData{}, false
	}
	return templates.ServiceDetailData{
		Service:     svc,
		Documents:   env.Catalog.DocumentsFor(svc.ID),
		CaseStudies: env.Catalog.CaseStudiesFor(svc.ID),
		Experts:     env.Catalog.ExpertsFor(svc.ID),
		CanQuote:    env.Catalog.HasSalesMaterial(svc),
	}, true
}

func HandleServiceDetail(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok := serviceDetailData(env, e.Request.PathValue("id"))
		if !ok {
			return e.String(http.StatusNotFound, "Servicio no encontrado")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ServiceDetailContent(data)
		} else {
			component = templates.ServiceDetailPage(data, GetNavData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleServiceConfirm asks for confirmation before the quoter opens. HTMX
// requests get only the dialog; plain requests get the detail page with the
// dialog open.
func HandleServiceConfirm(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok := serviceDetailData(env, e.Request.PathValue("id"))
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Servicio no encontrado")
		}
		if !data.CanQuote {
			return ErrorToast(e, http.StatusConflict, "Falta información para cotizar.")
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			return templates.ConfirmQuoteModal(data.Service).Render(e.Request.Context(), e.Response)
		}
		data.Confirming = true
		return templates.ServiceDetailPage(data, GetNavData(e.Request)).Render(e.Request.Context(), e.Response)
	}
}
