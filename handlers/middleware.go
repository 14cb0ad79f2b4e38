package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"serviceplus/templates"
)

type contextKey string

const SessionIDKey contextKey = "sessionID"
const NavDataKey contextKey = "navData"

const sessionCookie = "quoter_session"

// GetSessionID returns the quoter session of the request, or "" outside
// SessionMiddleware.
func GetSessionID(r *http.Request) string {
	if val, ok := r.Context().Value(SessionIDKey).(string); ok {
		return val
	}
	return ""
}

// GetNavData extracts the pre-built NavData from the request context.
func GetNavData(r *http.Request) templates.NavData {
	if val, ok := r.Context().Value(NavDataKey).(templates.NavData); ok {
		return val
	}
	return templates.NavData{ActivePath: r.URL.Path}
}

// SessionMiddleware gives every browser a quoter session cookie, used to
// refuse a second export while one is running, and stores the header
// navigation data in the request context.
func SessionMiddleware(env *Env) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sessionID := ""
		if cookie, err := e.Request.Cookie(sessionCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			} else {
				log.WithField("value", cookie.Value).Debug("middleware: replacing malformed session cookie")
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(e.Response, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   60 * 60 * 24 * 30,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(e.Request.Context(), SessionIDKey, sessionID)
		ctx = context.WithValue(ctx, NavDataKey, BuildNavData(e.Request, env))
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}

// BuildNavData builds the header state for the current path.
func BuildNavData(r *http.Request, env *Env) templates.NavData {
	return templates.NavData{
		ActivePath: r.URL.Path,
		QuoteCount: len(env.Store.All()),
	}
}
