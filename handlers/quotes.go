package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"serviceplus/services"
	"serviceplus/templates"
)

func HandleMyQuotes(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := templates.MyQuotesData{
			Listings: services.BuildListings(env.Store.All(), env.Catalog),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.MyQuotesContent(data)
		} else {
			component = templates.MyQuotesPage(data, GetNavData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// duplicateURL is the quoter URL prefilled with a draft.
func duplicateURL(serviceID string, d services.QuoteDraft) string {
	q := url.Values{}
	q.Set("duplicate", "1")
	q.Set("customer", d.CustomerName)
	q.Set("plan", string(d.PlanName))
	q.Set("licenses", strconv.Itoa(d.Licenses))
	q.Set("discount", strconv.FormatFloat(d.Discount, 'f', -1, 64))
	for _, a := range d.SelectedAddons {
		q.Add("addon", a)
	}
	return "/services/" + url.PathEscape(serviceID) + "/quote?" + q.Encode()
}

// HandleQuoteDuplicate sends the user to the quoter prefilled with a past
// quote. Nothing is recorded until that quoter exports.
func HandleQuoteDuplicate(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteID := e.Request.PathValue("id")
		q, ok := env.Store.FindByID(quoteID)
		if !ok {
			return ErrorToast(e, http.StatusNotFound, "Cotización no encontrada")
		}

		draft, err := services.Duplicate(q, env.Catalog)
		switch {
		case errors.Is(err, services.ErrNotFound):
			return ErrorToast(e, http.StatusNotFound, "El servicio asociado a esta cotización ya no existe.")
		case errors.Is(err, services.ErrMissingPricingData):
			return ErrorToast(e, http.StatusConflict, msgPricingMissing)
		case err != nil:
			log.WithError(err).WithField("quote_id", quoteID).Error("quote duplicate: failed")
			return ErrorToast(e, http.StatusInternalServerError, "No se pudo duplicar la cotización.")
		}

		redirectURL := duplicateURL(q.ServiceID, draft)
		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", redirectURL)
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, redirectURL)
	}
}
