package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"serviceplus/catalog"
	"serviceplus/services"
	"serviceplus/templates"
)

const (
	msgCustomerRequired = "Por favor, ingresa el nombre del cliente."
	msgRenderFailed     = "Lo sentimos, hubo un error al generar el PDF."
	msgPricingMissing   = "La información de precios no está disponible para este servicio."
	msgInvalidDiscount  = "El descuento no es válido."
)

var errServiceNotFound = errors.New("service not found")

// draftFromRequest reads the quoter form (query string or body). Missing
// fields keep the new-draft defaults, an unknown plan falls back to the
// first plan and add-ons the rule does not offer are dropped.
func draftFromRequest(r *http.Request, rule *catalog.PricingRule) (services.QuoteDraft, error) {
	draft := services.NewDraft(rule)
	if p := catalog.PlanName(r.FormValue("plan")); p != "" {
		if _, ok := rule.Plan(p); ok {
			draft.PlanName = p
		}
	}
	if v := r.FormValue("licenses"); v != "" {
		draft.Licenses = services.ParseLicenses(v)
	}
	for _, id := range r.Form["addon"] {
		if rule.HasAddon(id) && !draft.HasAddon(id) {
			draft.SelectedAddons = append(draft.SelectedAddons, id)
		}
	}
	draft.CustomerName = strings.TrimSpace(r.FormValue("customer"))

	d, err := services.ParseDiscount(r.FormValue("discount"))
	if err != nil {
		return draft, err
	}
	draft.Discount = d
	return draft, nil
}

// quoterData prices the request's draft for the service in the path. A
// service without pricing yields PricingMissing data and no error.
func quoterData(env *Env, r *http.Request) (templates.QuoterData, error) {
	id := r.PathValue("id")
	svc, ok := env.Catalog.ServiceByID(id)
	if !ok {
		return templates.QuoterData{}, fmt.Errorf("%w: %q", errServiceNotFound, id)
	}

	data := templates.QuoterData{
		Service:     svc,
		Rule:        env.Catalog.PricingRuleFor(id),
		Duplicating: r.FormValue("duplicate") == "1",
		Generating:  env.Workflow.IsGenerating(GetSessionID(r)),
	}
	if data.Rule == nil || len(data.Rule.Plans) == 0 {
		data.PricingMissing = true
		return data, nil
	}

	draft, err := draftFromRequest(r, data.Rule)
	data.Draft = draft
	if err != nil {
		return data, err
	}

	_, b, err := env.Workflow.Preview(id, draft)
	if errors.Is(err, services.ErrMissingPricingData) {
		data.PricingMissing = true
		return data, nil
	}
	if err != nil {
		return data, err
	}
	data.Breakdown = b
	return data, nil
}

func renderQuoter(e *core.RequestEvent, data templates.QuoterData) error {
	var component templ.Component
	if e.Request.Header.Get("HX-Request") == "true" {
		component = templates.QuoterContent(data)
	} else {
		component = templates.QuoterPage(data, GetNavData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuoter opens the quoter, prefilled from the query string when
// coming from a duplicated quote.
func HandleQuoter(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := quoterData(env, e.Request)
		switch {
		case errors.Is(err, errServiceNotFound):
			return e.String(http.StatusNotFound, "Servicio no encontrado")
		case errors.Is(err, services.ErrInvalidDiscount):
			SetToast(e, ToastWarning, msgInvalidDiscount)
			e.Request.Form.Del("discount")
			data, err = quoterData(env, e.Request)
		}
		if err != nil {
			log.WithError(err).Error("quoter: could not price draft")
			return e.String(http.StatusInternalServerError, msgRenderFailed)
		}
		return renderQuoter(e, data)
	}
}

// HandleQuotePreview recomputes the summary panel for the posted form.
func HandleQuotePreview(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulario inválido")
		}

		data, err := quoterData(env, e.Request)
		switch {
		case errors.Is(err, errServiceNotFound):
			return ErrorToast(e, http.StatusNotFound, "Servicio no encontrado")
		case errors.Is(err, services.ErrInvalidDiscount):
			return ErrorToast(e, http.StatusBadRequest, msgInvalidDiscount)
		case err != nil:
			log.WithError(err).Error("quote preview: could not price draft")
			return ErrorToast(e, http.StatusInternalServerError, msgRenderFailed)
		}
		if data.PricingMissing {
			return ErrorToast(e, http.StatusConflict, msgPricingMissing)
		}
		return templates.QuoteSummaryPanel(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteExport renders the proposal PDF, records the quote and sends
// the document as a download. An empty customer name re-renders the form
// with the error; nothing is recorded unless the PDF was produced.
func HandleQuoteExport(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulario inválido")
		}

		data, err := quoterData(env, e.Request)
		switch {
		case errors.Is(err, errServiceNotFound):
			return ErrorToast(e, http.StatusNotFound, "Servicio no encontrado")
		case errors.Is(err, services.ErrInvalidDiscount):
			return ErrorToast(e, http.StatusBadRequest, msgInvalidDiscount)
		case err != nil:
			log.WithError(err).Error("quote export: could not price draft")
			return ErrorToast(e, http.StatusInternalServerError, msgRenderFailed)
		}
		if data.PricingMissing {
			return ErrorToast(e, http.StatusConflict, msgPricingMissing)
		}

		res, err := env.Workflow.Export(e.Request.Context(), GetSessionID(e.Request), data.Service.ID, data.Draft, env.now())
		switch {
		case errors.Is(err, services.ErrValidation):
			SetToast(e, ToastWarning, msgCustomerRequired)
			data.Error = msgCustomerRequired
			return renderQuoter(e, data)
		case errors.Is(err, services.ErrExportInProgress):
			return ErrorToast(e, http.StatusConflict, "Ya se está generando un PDF para esta sesión.")
		case errors.Is(err, services.ErrPersistFailed) && res != nil:
			log.WithError(err).Warn("quote export: document delivered but quote not recorded")
			SetToast(e, ToastWarning, "El PDF se generó, pero no se pudo guardar la cotización.")
		case err != nil:
			log.WithError(err).Error("quote export: failed")
			return ErrorToast(e, http.StatusInternalServerError, msgRenderFailed)
		default:
			SetToast(e, ToastSuccess, "Cotización generada")
		}

		art := res.Artifact
		log.WithFields(log.Fields{"pages": art.PageCount, "quote_id": res.Quote.ID}).Debug("quote export: rendered")
		return sendDownload(e, "application/pdf", art.Filename, art.Content)
	}
}
