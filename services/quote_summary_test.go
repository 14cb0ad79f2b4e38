package services

import (
	"context"
	"image/color"
	"testing"
)

func TestRasterCapturer_ScalesOutput(t *testing.T) {
	b := testBreakdown(t)
	s := QuoteSummary{ServiceName: "Soporte Workspace", Breakdown: b}

	one, err := RasterCapturer{Scale: 1}.Capture(context.Background(), s)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	two, err := RasterCapturer{Scale: 2}.Capture(context.Background(), s)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if one.Bounds().Dx() != summaryWidth {
		t.Errorf("width = %d, want %d", one.Bounds().Dx(), summaryWidth)
	}
	if two.Bounds().Dx() != 2*one.Bounds().Dx() || two.Bounds().Dy() != 2*one.Bounds().Dy() {
		t.Errorf("2x capture = %v, 1x capture = %v", two.Bounds(), one.Bounds())
	}
}

func TestRasterCapturer_HeightGrowsWithLineItems(t *testing.T) {
	small := testBreakdown(t)
	large := small
	large.LineItems = append(append([]LineItem{}, small.LineItems...), LineItem{Name: "Add-on: Extra", UnitPrice: 1, Qty: 1, Total: 1})

	a, err := RasterCapturer{Scale: 1}.Capture(context.Background(), QuoteSummary{Breakdown: small})
	if err != nil {
		t.Fatal(err)
	}
	c, err := RasterCapturer{Scale: 1}.Capture(context.Background(), QuoteSummary{Breakdown: large})
	if err != nil {
		t.Fatal(err)
	}
	if c.Bounds().Dy()-a.Bounds().Dy() != summaryLineHeight {
		t.Errorf("height delta = %d, want %d", c.Bounds().Dy()-a.Bounds().Dy(), summaryLineHeight)
	}
}

func TestRasterCapturer_DrawsInk(t *testing.T) {
	img, err := RasterCapturer{Scale: 1}.Capture(context.Background(), QuoteSummary{ServiceName: "S", Breakdown: testBreakdown(t)})
	if err != nil {
		t.Fatal(err)
	}
	white := color.RGBAModel.Convert(color.White)
	if img.At(0, 0) != white {
		t.Errorf("corner should be white background, got %v", img.At(0, 0))
	}

	var inked bool
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y && !inked; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.At(x, y) != white {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("expected text to be drawn")
	}
}

func TestRasterCapturer_Errors(t *testing.T) {
	if _, err := (RasterCapturer{}).Capture(context.Background(), QuoteSummary{}); err == nil {
		t.Error("expected error for summary without line items")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (RasterCapturer{}).Capture(ctx, QuoteSummary{Breakdown: testBreakdown(t)}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestAsciiOnly(t *testing.T) {
	if got := asciiOnly("Cotización Básica Ñandú"); got != "Cotizacion Basica Nandu" {
		t.Errorf("asciiOnly = %q", got)
	}
}
