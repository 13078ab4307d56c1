package imgcc

// ByteLayout is the concrete byte geometry of an image: texel_stride bytes
// per pixel, row_stride bytes per scanline (which may exceed width *
// texel_stride to satisfy device alignment), and pixel dimensions.
type ByteLayout struct {
	Width, Height uint32
	TexelStride   uint16
	RowStride     uint32
}

// IsConsistent reports row_stride >= width * texel_stride.
func (l ByteLayout) IsConsistent() bool {
	return uint64(l.RowStride) >= uint64(l.Width)*uint64(l.TexelStride)
}

// Bytes returns the total buffer length the layout requires.
func (l ByteLayout) Bytes() uint64 {
	return uint64(l.Height) * uint64(l.RowStride)
}

// Chroma is the pair of an image's pixel encoding and its colorimetric
// interpretation — see GLOSSARY.
type Chroma struct {
	Texel Texel
	Color Color
}

// Generic is a value that is either fully known (Concrete) or a reference
// to a generic variable resolved later by monomorphization (Var, an index
// into the type-argument list supplied at a call site).
type Generic[T any] struct {
	value      T
	Var        int
	isConcrete bool
}

// ConcreteOf returns a known Generic value.
func ConcreteOf[T any](v T) Generic[T] { return Generic[T]{value: v, isConcrete: true} }

// VarOf returns a Generic referencing generic variable idx.
func VarOf[T any](idx int) Generic[T] { return Generic[T]{Var: idx} }

// IsConcrete reports whether the value is already known.
func (g Generic[T]) IsConcrete() bool { return g.isConcrete }

// Concrete returns the known value and true, or the zero value and false.
func (g Generic[T]) Concrete() (T, bool) { return g.value, g.isConcrete }

// GenericDescriptor is a partially-known image type: its size and its
// chroma may each independently be concrete or a reference to a generic
// variable.
type GenericDescriptor struct {
	Size   Generic[[2]uint32]
	Chroma Generic[Chroma]
}

// AsConcrete returns the fully-known Descriptor, or false if either
// component is still generic.
func (g GenericDescriptor) AsConcrete() (Descriptor, bool) {
	size, ok := g.Size.Concrete()
	if !ok {
		return Descriptor{}, false
	}
	chroma, ok := g.Chroma.Concrete()
	if !ok {
		return Descriptor{}, false
	}
	stride := chroma.Texel.Bytes()
	return Descriptor{
		Texel: chroma.Texel,
		Color: chroma.Color,
		Layout: ByteLayout{
			Width: size[0], Height: size[1],
			TexelStride: uint16(stride),
			RowStride:   size[0] * uint32(stride),
		},
	}, true
}

// Monomorphize resolves every Var reference against tys (the concrete
// argument descriptors supplied at a call site, indexed by generic
// variable) and returns the fully concrete Descriptor.
func (g GenericDescriptor) Monomorphize(tys []Descriptor) Descriptor {
	if d, ok := g.AsConcrete(); ok {
		return d
	}

	var w, h uint32
	if size, ok := g.Size.Concrete(); ok {
		w, h = size[0], size[1]
	} else {
		d := tys[g.Size.Var]
		w, h = d.Layout.Width, d.Layout.Height
	}

	var texel Texel
	var color Color
	if chroma, ok := g.Chroma.Concrete(); ok {
		texel, color = chroma.Texel, chroma.Color
	} else {
		d := tys[g.Chroma.Var]
		texel, color = d.Texel, d.Color
	}

	stride := texel.Bytes()
	return Descriptor{
		Texel: texel, Color: color,
		Layout: ByteLayout{
			Width: w, Height: h,
			TexelStride: uint16(stride),
			RowStride:   w * uint32(stride),
		},
	}
}

// Descriptor is a fully concrete image type.
type Descriptor struct {
	Texel  Texel
	Color  Color
	Layout ByteLayout
}

// NewDescriptor builds a concrete Descriptor with a layout packed from
// texel's byte size (texel_stride = texel.Bytes(), row_stride =
// width*texel_stride) per spec §4.1.
func NewDescriptor(texel Texel, color Color, width, height uint32) Descriptor {
	stride := texel.Bytes()
	return Descriptor{
		Texel: texel, Color: color,
		Layout: ByteLayout{
			Width: width, Height: height,
			TexelStride: uint16(stride),
			RowStride:   width * uint32(stride),
		},
	}
}

// DescriptorWithTexel builds a Descriptor with an unspecified default color
// (sRGB Bt709 D65), convenient for purely geometric/procedural constructs
// like the bilinear gradient used by Resize.
func DescriptorWithTexel(texel Texel, width, height uint32) Descriptor {
	return NewDescriptor(texel, RgbColor(Bt709, D65, Srgb), width, height)
}

// IsConsistent reports whether the layout is internally consistent with
// the texel's byte size: row_stride >= width*texel_stride and
// texel_stride == texel.Bytes().
func (d Descriptor) IsConsistent() bool {
	return d.Layout.IsConsistent() && int(d.Layout.TexelStride) == d.Texel.Bytes()
}

// Generic returns the GenericDescriptor equivalent of this concrete
// descriptor, for use in register tables that store GenericDescriptor
// uniformly.
func (d Descriptor) Generic() GenericDescriptor {
	return GenericDescriptor{
		Size:   ConcreteOf([2]uint32{d.Layout.Width, d.Layout.Height}),
		Chroma: ConcreteOf(Chroma{Texel: d.Texel, Color: d.Color}),
	}
}

// GenericBuffer is a byte buffer of concrete or generic length.
type GenericBuffer struct {
	Size Generic[uint64]
}

// AsConcrete returns the known length, or false if still generic.
func (b GenericBuffer) AsConcrete() (uint64, bool) { return b.Size.Concrete() }

// Monomorphize resolves a generic length reference against tys.
func (b GenericBuffer) Monomorphize(tys []Descriptor) uint64 {
	if n, ok := b.Size.Concrete(); ok {
		return n
	}
	return tys[b.Size.Var].Layout.Bytes()
}
