package render

import (
	"context"
	"testing"

	"github.com/matzehuels/railsheet/pkg/errors"
)

func TestConvertWithoutTool(t *testing.T) {
	prev := rsvgTool
	rsvgTool = "railsheet-no-such-converter"
	t.Cleanup(func() { rsvgTool = prev })

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}

	ctx := context.Background()
	if _, err := ToPDF(ctx, []byte("<svg/>")); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
	if _, err := ToPNG(ctx, []byte("<svg/>"), 0); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)

	png, err := ToPNG(context.Background(), svg, 2)
	if err != nil {
		t.Fatalf("ToPNG() error = %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("ToPNG() did not return a PNG")
	}
}
