package imgcc

// SampleBits is the bit width of each sample component in a Texel.
type SampleBits uint8

const (
	// Bits8 packs one byte per component (e.g. 8-bit sRGB).
	Bits8 SampleBits = iota
	// Bits16 packs two bytes per component.
	Bits16
	// Bits32Float packs a 32-bit IEEE-754 float per component.
	Bits32Float
)

// BytesPerComponent returns the storage size of one sample component.
func (b SampleBits) BytesPerComponent() int {
	switch b {
	case Bits16:
		return 2
	case Bits32Float:
		return 4
	default: // Bits8
		return 1
	}
}

// SampleParts is the channel layout of a Texel's samples.
type SampleParts uint8

const (
	// Luma is a single luminance/gray channel.
	Luma SampleParts = iota
	// LumaA is luminance plus alpha.
	LumaA
	// Rgb is three color channels, no alpha.
	Rgb
	// RgbA is three color channels plus alpha, in R,G,B,A order.
	RgbA
	// Bgr is three color channels, no alpha, in B,G,R order.
	Bgr
	// BgrA is three color channels plus alpha, in B,G,R,A order.
	BgrA
)

// NumComponents returns the sample count per pixel.
func (p SampleParts) NumComponents() int {
	switch p {
	case Luma:
		return 1
	case LumaA:
		return 2
	case Rgb, Bgr:
		return 3
	default: // RgbA, BgrA
		return 4
	}
}

// hasAlpha reports whether the layout carries an alpha channel.
func (p SampleParts) hasAlpha() bool {
	return p == LumaA || p == RgbA || p == BgrA
}

// Texel is the bit-level encoding of one pixel: its per-component bit
// width and its channel layout.
type Texel struct {
	Bits  SampleBits
	Parts SampleParts
}

// NewTexelU8 returns an 8-bit-per-component texel with the given layout.
func NewTexelU8(parts SampleParts) Texel { return Texel{Bits: Bits8, Parts: parts} }

// Bytes returns the total byte size of one texel.
func (t Texel) Bytes() int {
	return t.Parts.NumComponents() * t.Bits.BytesPerComponent()
}

// ColorChannel names one logical sample channel, independent of any
// particular Texel's physical layout.
type ColorChannel uint8

const (
	ChannelR ColorChannel = iota
	ChannelG
	ChannelB
	ChannelA
	ChannelLuma
)

// ChannelTexel derives the single-channel texel extracted from t at
// channel, or false if channel is not present in t's layout. The result
// keeps t's bit width; its Parts is always Luma (a bare single value),
// matching Unary::Extract's "single-channel texel derived from source
// texel" rule in spec §4.3.
func (t Texel) ChannelTexel(channel ColorChannel) (Texel, bool) {
	if !t.hasChannel(channel) {
		return Texel{}, false
	}
	return Texel{Bits: t.Bits, Parts: Luma}, true
}

func (t Texel) hasChannel(channel ColorChannel) bool {
	switch channel {
	case ChannelLuma:
		return t.Parts == Luma || t.Parts == LumaA
	case ChannelA:
		return t.Parts.hasAlpha()
	case ChannelR, ChannelG, ChannelB:
		return t.Parts == Rgb || t.Parts == RgbA || t.Parts == Bgr || t.Parts == BgrA
	default:
		return false
	}
}

// ChannelWeightVec4 validates that t's layout can be represented as a
// weighting over a 4-component vector — true for every SampleParts this
// compiler knows about — returning false only for a layout Inject cannot
// reason about (spec §4.3, "from_channels.channel_weight_vec4().is_none()").
func (t Texel) ChannelWeightVec4() ([4]float32, bool) {
	switch t.Parts {
	case Luma, LumaA, Rgb, RgbA, Bgr, BgrA:
		var w [4]float32
		for i := 0; i < t.Parts.NumComponents(); i++ {
			w[i] = 1
		}
		return w, true
	default:
		return [4]float32{}, false
	}
}

// ChannelPosition is the index of a logical channel within a texel's
// 4-component slot layout (R=0,G=1,B=2,A=3), used by Palette's coordinate
// channel selection and by Inject to place its replacement.
type ChannelPosition struct {
	idx uint8
}

// NewChannelPosition returns the position of channel, or false if channel
// has no fixed RGBA slot (i.e. Luma, which is synthesized rather than
// addressed by a single fixed index).
func NewChannelPosition(channel ColorChannel) (ChannelPosition, bool) {
	switch channel {
	case ChannelR:
		return ChannelPosition{0}, true
	case ChannelG:
		return ChannelPosition{1}, true
	case ChannelB:
		return ChannelPosition{2}, true
	case ChannelA:
		return ChannelPosition{3}, true
	default:
		return ChannelPosition{}, false
	}
}

// IntoVec4 returns a one-hot vector selecting this channel's slot, used to
// pack Palette's x_coord/y_coord uniform fields.
func (p ChannelPosition) IntoVec4() [4]float32 {
	var v [4]float32
	v[p.idx] = 1
	return v
}
