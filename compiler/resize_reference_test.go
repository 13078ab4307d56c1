package compiler

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"
)

// TestResizeTargetDimensionsMatchReferenceScaler cross-checks the claim
// TestScenarioResize200To100 and ir.TestResizeLowersToBilinearThenPalette
// both depend on — that resizing takes its output size from the *target*
// dimensions, not the source's — against golang.org/x/image/draw's own
// bilinear scaler, which has the same convention (the destination
// rectangle passed to Scale, not the source image, determines the result
// size). This doesn't exercise the shader catalogue's Bilinear/Palette
// pair itself; it grounds that the dimension convention Resize assumes is
// the same one a real image-scaling library uses.
func TestResizeTargetDimensionsMatchReferenceScaler(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0, A: 255})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	if got := dst.Bounds().Dx(); got != 100 {
		t.Errorf("reference scaler width = %d, want 100", got)
	}
	if got := dst.Bounds().Dy(); got != 100 {
		t.Errorf("reference scaler height = %d, want 100", got)
	}
}
