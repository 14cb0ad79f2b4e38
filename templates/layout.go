// Package templates renders the portal's HTML as templ components.
package templates

import (
	"strconv"
	"strings"
)

// NavData drives the header navigation.
type NavData struct {
	ActivePath string
	QuoteCount int
}

type navLink struct {
	Href   string
	Label  string
	Prefix string
}

var navLinks = []navLink{
	{Href: "/portfolio", Label: "Portafolio", Prefix: "/portfolio"},
	{Href: "/quotes", Label: "Mis Cotizaciones", Prefix: "/quotes"},
	{Href: "/products/new", Label: "Nuevo Servicio", Prefix: "/products"},
}

// IsActive reports whether the link prefix owns the current path. Service
// pages belong to the portfolio.
func (n NavData) IsActive(prefix string) bool {
	if prefix == "/portfolio" && strings.HasPrefix(n.ActivePath, "/services") {
		return true
	}
	return strings.HasPrefix(n.ActivePath, prefix)
}

func (n NavData) showBadge(l navLink) bool {
	return l.Prefix == "/quotes" && n.QuoteCount > 0
}

func (n NavData) badge() string {
	return strconv.Itoa(n.QuoteCount)
}

func pageTitle(title string) string {
	return title + " | GTM Service Plus Portal"
}
