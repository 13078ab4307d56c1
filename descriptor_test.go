package imgcc

import "testing"

func TestByteLayoutIsConsistent(t *testing.T) {
	consistent := ByteLayout{Width: 10, Height: 5, TexelStride: 4, RowStride: 40}
	if !consistent.IsConsistent() {
		t.Error("width*texel_stride == row_stride should be consistent")
	}
	padded := ByteLayout{Width: 10, Height: 5, TexelStride: 4, RowStride: 48}
	if !padded.IsConsistent() {
		t.Error("row_stride > width*texel_stride should be consistent (alignment padding)")
	}
	inconsistent := ByteLayout{Width: 10, Height: 5, TexelStride: 4, RowStride: 32}
	if inconsistent.IsConsistent() {
		t.Error("row_stride < width*texel_stride should not be consistent")
	}
}

func TestByteLayoutBytes(t *testing.T) {
	l := ByteLayout{Width: 10, Height: 5, TexelStride: 4, RowStride: 48}
	if got, want := l.Bytes(), uint64(240); got != want {
		t.Errorf("Bytes() = %d, want %d", got, want)
	}
}

func TestGenericConcreteVsVar(t *testing.T) {
	c := ConcreteOf(42)
	if !c.IsConcrete() {
		t.Error("ConcreteOf should be concrete")
	}
	if v, ok := c.Concrete(); !ok || v != 42 {
		t.Errorf("Concrete() = %v, %v, want 42, true", v, ok)
	}

	v := VarOf[int](3)
	if v.IsConcrete() {
		t.Error("VarOf should not be concrete")
	}
	if v.Var != 3 {
		t.Errorf("Var = %d, want 3", v.Var)
	}
}

func TestDescriptorIsConsistent(t *testing.T) {
	d := NewDescriptor(NewTexelU8(RgbA), RgbColor(Bt709, D65, Srgb), 10, 10)
	if !d.IsConsistent() {
		t.Error("NewDescriptor should always produce a consistent descriptor")
	}

	bad := d
	bad.Layout.TexelStride = 99
	if bad.IsConsistent() {
		t.Error("mismatched texel_stride should be inconsistent")
	}
}

func TestDescriptorGenericRoundTrip(t *testing.T) {
	d := NewDescriptor(NewTexelU8(Rgb), RgbColor(Bt709, D65, Srgb), 20, 15)
	g := d.Generic()
	got, ok := g.AsConcrete()
	if !ok {
		t.Fatal("a fully concrete Generic() should convert back with AsConcrete")
	}
	if got != d {
		t.Errorf("round trip = %+v, want %+v", got, d)
	}
}

func TestGenericDescriptorMonomorphizeSize(t *testing.T) {
	arg := NewDescriptor(NewTexelU8(RgbA), RgbColor(Bt709, D65, Srgb), 100, 50)
	g := GenericDescriptor{
		Size:   VarOf[[2]uint32](0),
		Chroma: ConcreteOf(Chroma{Texel: NewTexelU8(Rgb), Color: RgbColor(Bt709, D65, Srgb)}),
	}
	got := g.Monomorphize([]Descriptor{arg})
	if got.Layout.Width != 100 || got.Layout.Height != 50 {
		t.Errorf("monomorphized size = (%d,%d), want (100,50)", got.Layout.Width, got.Layout.Height)
	}
	if got.Texel.Parts != Rgb {
		t.Errorf("monomorphized chroma should stay the concrete Rgb texel, got %+v", got.Texel)
	}
}

func TestGenericDescriptorMonomorphizeChroma(t *testing.T) {
	arg := NewDescriptor(NewTexelU8(LumaA), RgbColor(Bt2020, D65, Linear), 4, 4)
	g := GenericDescriptor{
		Size:   ConcreteOf([2]uint32{8, 8}),
		Chroma: VarOf[Chroma](0),
	}
	got := g.Monomorphize([]Descriptor{arg})
	if got.Layout.Width != 8 || got.Layout.Height != 8 {
		t.Errorf("monomorphized size = (%d,%d), want (8,8)", got.Layout.Width, got.Layout.Height)
	}
	if got.Texel.Parts != LumaA || got.Color.Primary != Bt2020 {
		t.Errorf("monomorphized chroma = %+v, want LumaA/Bt2020", got)
	}
}

func TestGenericBufferMonomorphize(t *testing.T) {
	arg := NewDescriptor(NewTexelU8(RgbA), RgbColor(Bt709, D65, Srgb), 10, 10)

	concrete := GenericBuffer{Size: ConcreteOf(uint64(64))}
	if got := concrete.Monomorphize([]Descriptor{arg}); got != 64 {
		t.Errorf("concrete buffer monomorphize = %d, want 64", got)
	}

	generic := GenericBuffer{Size: VarOf[uint64](0)}
	if got, want := generic.Monomorphize([]Descriptor{arg}), arg.Layout.Bytes(); got != want {
		t.Errorf("generic buffer monomorphize = %d, want %d", got, want)
	}
}
