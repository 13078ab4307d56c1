package ir

import (
	"errors"
	"testing"

	"github.com/gogpu/imgcc"
)

func rgba8(w, h uint32) imgcc.Descriptor {
	return imgcc.NewDescriptor(imgcc.NewTexelU8(imgcc.RgbA), imgcc.RgbColor(imgcc.Bt709, imgcc.D65, imgcc.Srgb), w, h)
}

func mustInput(t *testing.T, cb *CommandBuffer, desc imgcc.Descriptor) Register {
	t.Helper()
	reg, err := cb.Input(desc.Generic())
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	return reg
}

func TestInputOutputRender(t *testing.T) {
	cb := NewCommandBuffer()
	src := mustInput(t, cb, rgba8(4, 4))

	if _, err := cb.Output(src); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if _, err := cb.Render(src); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if _, err := cb.Output(Register(99)); err == nil {
		t.Error("Output on an out-of-range register should fail")
	}
}

func TestCropPreservesChroma(t *testing.T) {
	cb := NewCommandBuffer()
	src := mustInput(t, cb, rgba8(10, 10))

	rect := imgcc.Rectangle{X: 1, Y: 1, MaxX: 5, MaxY: 5}
	dst, err := cb.Crop(src, rect)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}

	srcDesc, _ := cb.Desc(src).Texture.AsConcrete()
	dstDesc, ok := cb.Desc(dst).Texture.AsConcrete()
	if !ok {
		t.Fatal("cropped descriptor should be concrete")
	}
	if dstDesc.Color != srcDesc.Color || dstDesc.Texel != srcDesc.Texel {
		t.Error("Crop must preserve chroma")
	}
	if dstDesc.Layout.Width != 4 || dstDesc.Layout.Height != 4 {
		t.Errorf("Crop size = %dx%d, want 4x4", dstDesc.Layout.Width, dstDesc.Layout.Height)
	}
}

func TestColorConvertRejectsMismatchedWhitepoint(t *testing.T) {
	cb := NewCommandBuffer()
	src := mustInput(t, cb, rgba8(4, 4))

	// Both are RGB kind colors; RGB-to-RGB requires equal whitepoint.
	bad := imgcc.RgbColor(imgcc.Bt2020, imgcc.D50, imgcc.Linear)
	if _, err := cb.ColorConvert(src, bad); err == nil {
		t.Error("ColorConvert between RGB colors with differing whitepoints should fail")
	}

	same := imgcc.RgbColor(imgcc.Bt2020, imgcc.D65, imgcc.Linear)
	if _, err := cb.ColorConvert(src, same); err != nil {
		t.Errorf("ColorConvert between RGB colors sharing a whitepoint should succeed, got %v", err)
	}
}

func TestTransmuteRequiresMatchingByteSize(t *testing.T) {
	cb := NewCommandBuffer()
	src := mustInput(t, cb, rgba8(4, 4))

	// RgbA(u8) is 4 bytes; Rgb(u8) is 3 bytes - mismatched byte size.
	to := imgcc.NewDescriptor(imgcc.NewTexelU8(imgcc.Rgb), imgcc.RgbColor(imgcc.Bt709, imgcc.D65, imgcc.Srgb), 4, 4).Generic()
	if _, err := cb.Transmute(src, to); err == nil {
		t.Error("Transmute between mismatched byte-size texels should fail")
	}

	sameSize := imgcc.NewDescriptor(imgcc.NewTexelU8(imgcc.RgbA), imgcc.RgbColor(imgcc.Bt2020, imgcc.D50, imgcc.Linear), 4, 4).Generic()
	if _, err := cb.Transmute(src, sameSize); err != nil {
		t.Errorf("Transmute between equal byte-size texels should succeed, got %v", err)
	}

	mismatchedDims := imgcc.NewDescriptor(imgcc.NewTexelU8(imgcc.RgbA), imgcc.RgbColor(imgcc.Bt709, imgcc.D65, imgcc.Srgb), 8, 8).Generic()
	if _, err := cb.Transmute(src, mismatchedDims); err == nil {
		t.Error("Transmute to a mismatched concrete size should fail")
	}
}

func TestInscribeRequiresMatchingChromaAndSize(t *testing.T) {
	cb := NewCommandBuffer()
	below := mustInput(t, cb, rgba8(10, 10))
	above := mustInput(t, cb, rgba8(4, 4))

	if _, err := cb.Inscribe(below, above, imgcc.Rectangle{X: 2, Y: 2, MaxX: 6, MaxY: 6}); err != nil {
		t.Fatalf("Inscribe: %v", err)
	}

	if _, err := cb.Inscribe(below, above, imgcc.Rectangle{X: 0, Y: 0, MaxX: 2, MaxY: 2}); err == nil {
		t.Error("Inscribe should reject a placement rect that doesn't match above's size")
	}
}

func TestAffineRejectsNearSingularAndBilinear(t *testing.T) {
	cb := NewCommandBuffer()
	below := mustInput(t, cb, rgba8(8, 8))
	above := mustInput(t, cb, rgba8(8, 8))

	singular := imgcc.RowMatrix{}
	if _, err := cb.Affine(below, above, singular, AffineNearest); err == nil {
		t.Error("Affine with a near-singular matrix should fail")
	}

	identity := imgcc.IdentityMatrix()
	_, err := cb.Affine(below, above, identity, AffineBiLinear)
	var ce *imgcc.CommandError
	if !errors.As(err, &ce) || ce.Kind() != imgcc.KindUnimplemented {
		t.Errorf("Affine with AffineBiLinear should be Unimplemented, got %v", err)
	}
	if _, err := cb.Affine(below, above, identity, AffineNearest); err != nil {
		t.Errorf("Affine with a well-conditioned matrix and Nearest sampling should succeed, got %v", err)
	}
}

func TestBufferOverlayAlignment(t *testing.T) {
	cb := NewCommandBuffer()
	lhs, err := cb.BufferZero(64)
	if err != nil {
		t.Fatalf("BufferZero: %v", err)
	}
	rhs, err := cb.BufferInit(16, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("BufferInit: %v", err)
	}

	if _, err := cb.BufferOverlay(lhs, rhs, 3); err == nil {
		t.Error("BufferOverlay at a non-multiple-of-4 offset should fail")
	}
	if _, err := cb.BufferOverlay(lhs, rhs, 32); err != nil {
		t.Errorf("BufferOverlay at an aligned offset should succeed, got %v", err)
	}
}

func TestInvokeProducesOneResultPerDeclaredOutput(t *testing.T) {
	cb := NewCommandBuffer()
	arg := mustInput(t, cb, rgba8(4, 4))

	results := []imgcc.GenericDescriptor{rgba8(4, 4).Generic(), rgba8(4, 4).Generic()}
	_, resultRegs, err := cb.Invoke(0, []Register{arg}, nil, results)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(resultRegs) != 2 {
		t.Fatalf("Invoke produced %d result registers, want 2", len(resultRegs))
	}
	for _, r := range resultRegs {
		if cb.Desc(r).Kind != RegTexture {
			t.Error("each InvokedResult register should be a texture register")
		}
	}
}

func TestResizeLowersToBilinearThenPalette(t *testing.T) {
	cb := NewCommandBuffer()
	src := mustInput(t, cb, rgba8(200, 200))

	before := cb.NumOps()
	dst, err := cb.Resize(src, 100, 100)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	// Resize appends exactly a Bilinear Construct then a Palette Binary.
	if got, want := cb.NumOps()-before, 2; got != want {
		t.Fatalf("Resize appended %d ops, want %d", got, want)
	}
	if _, ok := cb.Op(dst).(BinaryOp); !ok {
		t.Errorf("Resize's result op is %T, want BinaryOp (Palette)", cb.Op(dst))
	}
	dstDesc, ok := cb.Desc(dst).Texture.AsConcrete()
	if !ok {
		t.Fatal("resized descriptor should be concrete")
	}
	// Palette's result size comes from its indices operand (the
	// width x height gradient), not from colors (src) - so the output
	// takes on the target dimensions, as Resize intends.
	if dstDesc.Layout.Width != 100 || dstDesc.Layout.Height != 100 {
		t.Errorf("Resize size = %dx%d, want 100x100", dstDesc.Layout.Width, dstDesc.Layout.Height)
	}
}

func TestGainMapBuildsButResultStaysBelowDescriptor(t *testing.T) {
	cb := NewCommandBuffer()
	below := mustInput(t, cb, rgba8(4, 4))
	above := mustInput(t, cb, rgba8(4, 4))

	dst, err := cb.GainMap(below, above, [4]float32{1, 0, 0, 1})
	if err != nil {
		t.Fatalf("GainMap should build successfully (lowering rejects it, not the builder): %v", err)
	}
	if cb.Desc(dst).Texture != cb.Desc(below).Texture {
		t.Error("GainMap's result descriptor should equal below's")
	}
}
