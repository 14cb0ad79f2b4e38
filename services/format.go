package services

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD formats an amount as US dollars with thousands separators and
// exactly 2 decimal places (e.g. $1,234.50), independent of host locale.
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-$" + usdPrinter.Sprintf("%.2f", -amount)
	}
	return "$" + usdPrinter.Sprintf("%.2f", amount)
}

// FormatPercent renders a percentage with one decimal, as shown next to the
// contribution margin.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDateES formats a date the way es-ES short dates read: d/m/yyyy
// without zero padding. Used in the document header.
func FormatDateES(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatLongDateES formats a date as "15 de octubre de 2026".
func FormatLongDateES(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
