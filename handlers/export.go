package handlers

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/pocketbase/pocketbase/core"
	log "github.com/sirupsen/logrus"

	"serviceplus/services"
)

// buildHistoryExport lists the quote history repriced at current prices.
func buildHistoryExport(env *Env) services.QuoteHistoryExport {
	listings := services.BuildListings(env.Store.All(), env.Catalog)
	return services.BuildQuoteHistoryExport(listings, env.Catalog, env.now())
}

func historyFilename(env *Env, ext string) string {
	return fmt.Sprintf("Cotizaciones_%s.%s", env.now().Format("2006-01-02"), ext)
}

// contentDisposition quotes or RFC 2231-encodes the filename as needed.
func contentDisposition(filename string) string {
	if cd := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); cd != "" {
		return cd
	}
	return "attachment"
}

func sendDownload(e *core.RequestEvent, contentType, filename string, content []byte) error {
	log.WithFields(log.Fields{
		"file": filename,
		"size": humanize.Bytes(uint64(len(content))),
	}).Info("export: sending file")

	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", contentDisposition(filename))
	e.Response.Write(content)
	return nil
}

// HandleQuoteHistoryExcel downloads the quote history as a workbook.
func HandleQuoteHistoryExcel(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		xlsxBytes, err := services.GenerateQuoteHistoryExcel(buildHistoryExport(env))
		if err != nil {
			log.WithError(err).Error("export_excel: failed to generate")
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo Excel")
		}
		return sendDownload(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			historyFilename(env, "xlsx"), xlsxBytes)
	}
}

// HandleQuoteHistoryPDF downloads the quote history as a PDF register.
func HandleQuoteHistoryPDF(env *Env) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		pdfBytes, err := services.GenerateQuoteHistoryPDF(buildHistoryExport(env))
		if err != nil {
			log.WithError(err).Error("export_pdf: failed to generate")
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo PDF")
		}
		return sendDownload(e, "application/pdf", historyFilename(env, "pdf"), pdfBytes)
	}
}
