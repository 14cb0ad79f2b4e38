package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"
)

// ToastLevel selects the toast style the layout script applies.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

const flashToastCookie = "flash_toast"

// toast is the showToast event detail, also stored in the flash cookie.
type toast struct {
	Message string     `json:"message"`
	Level   ToastLevel `json:"type"`
}

// SetToast queues a toast for the client. HTMX requests pick it up from the
// showToast HX-Trigger event; full-page loads read the flash cookie.
func SetToast(e *core.RequestEvent, level ToastLevel, message string) {
	t := toast{Message: message, Level: level}
	setTriggerEvent(e, "showToast", t)

	raw, err := json.Marshal(t)
	if err != nil {
		log.WithError(err).Error("toast: encode flash cookie")
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     flashToastCookie,
		Value:    url.QueryEscape(string(raw)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the layout script
		SameSite: http.SameSiteLaxMode,
	})
}

// setTriggerEvent adds one event to the HX-Trigger header and keeps the
// events already there. A header that is not a JSON object is replaced.
func setTriggerEvent(e *core.RequestEvent, name string, detail any) {
	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.WithError(err).WithField("header", existing).Warn("toast: HX-Trigger is not a JSON object, replacing")
			events = map[string]any{}
		}
	}
	events[name] = detail

	raw, err := json.Marshal(events)
	if err != nil {
		log.WithError(err).Error("toast: encode HX-Trigger")
		return
	}
	e.Response.Header().Set("HX-Trigger", string(raw))
}

// ErrorToast responds with statusCode and an error toast. HX-Reswap: none
// keeps HTMX from swapping the message body into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
