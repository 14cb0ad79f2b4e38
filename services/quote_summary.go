package services

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// QuoteSummary is the content of the on-screen summary panel that gets
// captured into the document.
type QuoteSummary struct {
	ServiceName string
	Breakdown   Breakdown
}

// SummaryCapturer turns a quote summary into a raster image.
type SummaryCapturer interface {
	Capture(ctx context.Context, s QuoteSummary) (image.Image, error)
}

const (
	summaryWidth      = 640
	summaryPadding    = 24
	summaryLineHeight = 22
	defaultScale      = 2
)

var (
	summaryInk    = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	summaryMuted  = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	summaryAccent = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	summaryRule   = color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
)

// RasterCapturer draws the summary table with a fixed bitmap face and scales
// it up by Scale, mirroring a 2x device-pixel capture.
type RasterCapturer struct {
	Scale int
}

type summaryRow struct {
	cells [4]string
	ink   color.Color
	rule  bool
}

func (c RasterCapturer) Capture(ctx context.Context, s QuoteSummary) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := s.Breakdown
	if len(b.LineItems) == 0 {
		return nil, fmt.Errorf("summary has no line items")
	}

	rows := []summaryRow{
		{cells: [4]string{"Resumen de la Cotización", "", "", ""}, ink: summaryInk},
		{cells: [4]string{s.ServiceName, "", "", ""}, ink: summaryMuted},
		{cells: [4]string{"Concepto", "Precio Unitario", "Cantidad", "Total"}, ink: summaryMuted, rule: true},
	}
	for _, li := range b.LineItems {
		rows = append(rows, summaryRow{
			cells: [4]string{li.Name, FormatUSD(li.UnitPrice), fmt.Sprintf("%d", li.Qty), FormatUSD(li.Total)},
			ink:   summaryInk,
		})
	}
	rows = append(rows,
		summaryRow{cells: [4]string{"Subtotal", "", "", FormatUSD(b.TotalPrice)}, ink: summaryInk, rule: true},
		summaryRow{cells: [4]string{fmt.Sprintf("Descuento (%g%%)", b.Discount), "", "", FormatUSD(-b.CustomerSaving)}, ink: summaryMuted},
		summaryRow{cells: [4]string{"Total Final (USD)", "", "", FormatUSD(b.FinalPrice)}, ink: summaryAccent, rule: true},
	)

	height := summaryPadding*2 + len(rows)*summaryLineHeight
	img := image.NewRGBA(image.Rect(0, 0, summaryWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	face := basicfont.Face7x13
	// left edge of column 0, right edges of columns 1..3
	colEdges := [4]int{summaryPadding, 380, 480, summaryWidth - summaryPadding}

	for i, r := range rows {
		baseline := summaryPadding + (i+1)*summaryLineHeight - 6
		if r.rule {
			top := baseline - summaryLineHeight + 6
			draw.Draw(img, image.Rect(summaryPadding, top, summaryWidth-summaryPadding, top+1), image.NewUniform(summaryRule), image.Point{}, draw.Src)
		}
		d := &font.Drawer{Dst: img, Src: image.NewUniform(r.ink), Face: face}
		for col, text := range r.cells {
			if text == "" {
				continue
			}
			x := colEdges[col]
			if col > 0 {
				x -= d.MeasureString(asciiOnly(text)).Ceil()
			}
			d.Dot = fixed.P(x, baseline)
			d.DrawString(asciiOnly(text))
		}
	}

	scale := c.Scale
	if scale < 1 {
		scale = defaultScale
	}
	if scale == 1 {
		return img, nil
	}
	return imaging.Resize(img, summaryWidth*scale, height*scale, imaging.Lanczos), nil
}

// asciiOnly strips the diacritics the bitmap face cannot draw.
func asciiOnly(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
