package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/phpdave11/gofpdf"

	"serviceplus/catalog"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrRenderFailure = errors.New("render failure")
)

// Page geometry in millimetres.
const (
	summaryTop   = 45.0
	sideMargin   = 15.0
	bottomMargin = 15.0
)

// DocumentArtifact is a rendered proposal ready for download.
type DocumentArtifact struct {
	Filename  string
	Content   []byte
	PageCount int
}

// ImagePlacement positions one slice of the summary raster on a page.
type ImagePlacement struct {
	X, Y, W, H float64
}

// PlanPages tiles a raster of rasterW x rasterH pixels over pages of
// pageW x pageH. The image height is scaled to the full page width while the
// drawn width leaves side margins. The first slice starts below the title
// block; every following page shifts the image up by one page height. The
// loop runs while the remaining height is >= 0, so an exact fit still adds
// one trailing page.
func PlanPages(rasterW, rasterH, pageW, pageH float64) []ImagePlacement {
	imgHeight := rasterH * pageW / rasterW
	drawW := pageW - 2*sideMargin

	pages := []ImagePlacement{{X: sideMargin, Y: summaryTop, W: drawW, H: imgHeight}}
	heightLeft := imgHeight - (pageH - summaryTop - bottomMargin)
	for heightLeft >= 0 {
		pages = append(pages, ImagePlacement{X: sideMargin, Y: heightLeft - imgHeight, W: drawW, H: imgHeight})
		heightLeft -= pageH
	}
	return pages
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// QuoteFilename builds Propuesta_{customer}_{service}.pdf with every run of
// whitespace replaced by an underscore.
func QuoteFilename(customerName, serviceName string) string {
	return fmt.Sprintf("Propuesta_%s_%s.pdf",
		whitespaceRun.ReplaceAllString(customerName, "_"),
		whitespaceRun.ReplaceAllString(serviceName, "_"))
}

// Renderer produces the customer-facing proposal PDF.
type Renderer struct {
	Capturer SummaryCapturer
}

func NewRenderer() *Renderer {
	return &Renderer{Capturer: RasterCapturer{Scale: defaultScale}}
}

// Render captures the quote summary and lays it out on A4 pages below a title
// block. An empty customer name fails with ErrValidation before any work is
// done; every later failure wraps ErrRenderFailure.
func (r *Renderer) Render(ctx context.Context, service catalog.Service, b Breakdown, customerName string, generatedAt time.Time) (*DocumentArtifact, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	img, err := r.Capturer.Capture(ctx, QuoteSummary{ServiceName: service.Name, Breakdown: b})
	if err != nil {
		return nil, fmt.Errorf("%w: capture summary: %v", ErrRenderFailure, err)
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: capture summary: empty image", ErrRenderFailure)
	}

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: encode summary: %v", ErrRenderFailure, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetTextColor(45, 55, 72)
	pdf.SetFont("Helvetica", "B", 22)
	centerText(pdf, tr("Propuesta Service Plus"), pageW, 20)
	pdf.SetTextColor(100, 116, 139)
	pdf.SetFont("Helvetica", "", 14)
	centerText(pdf, tr("Preparado para: "+customerName), pageW, 30)
	centerText(pdf, tr("Fecha: "+FormatDateES(generatedAt)), pageW, 38)

	const imageName = "quote-summary"
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, opts, &png)

	for i, p := range PlanPages(float64(bounds.Dx()), float64(bounds.Dy()), pageW, pageH) {
		if i > 0 {
			pdf.AddPage()
		}
		pdf.ImageOptions(imageName, p.X, p.Y, p.W, p.H, false, opts, 0, "")
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("%w: write pdf: %v", ErrRenderFailure, err)
	}

	return &DocumentArtifact{
		Filename:  QuoteFilename(customerName, service.Name),
		Content:   out.Bytes(),
		PageCount: pdf.PageCount(),
	}, nil
}

func centerText(pdf *gofpdf.Fpdf, s string, pageW, y float64) {
	pdf.Text((pageW-pdf.GetStringWidth(s))/2, y, s)
}
