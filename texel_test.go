package imgcc

import "testing"

func TestTexelBytes(t *testing.T) {
	tests := []struct {
		name string
		t    Texel
		want int
	}{
		{"u8 rgba", NewTexelU8(RgbA), 4},
		{"u8 rgb", NewTexelU8(Rgb), 3},
		{"u8 luma", NewTexelU8(Luma), 1},
		{"u8 lumaA", NewTexelU8(LumaA), 2},
		{"16-bit rgba", Texel{Bits: Bits16, Parts: RgbA}, 8},
		{"32-float rgba", Texel{Bits: Bits32Float, Parts: RgbA}, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.Bytes(); got != tt.want {
				t.Errorf("Bytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTexelChannelTexel(t *testing.T) {
	rgba := NewTexelU8(RgbA)

	if _, ok := rgba.ChannelTexel(ChannelA); !ok {
		t.Error("RgbA texel should have an alpha channel")
	}
	if got, ok := rgba.ChannelTexel(ChannelR); !ok || got.Parts != Luma || got.Bits != Bits8 {
		t.Errorf("ChannelTexel(R) = %+v, %v, want single-channel Luma Bits8", got, ok)
	}

	luma := NewTexelU8(Luma)
	if _, ok := luma.ChannelTexel(ChannelA); ok {
		t.Error("Luma texel should not have an alpha channel")
	}
	if _, ok := luma.ChannelTexel(ChannelLuma); !ok {
		t.Error("Luma texel should have a luma channel")
	}
	if _, ok := luma.ChannelTexel(ChannelR); ok {
		t.Error("Luma texel should not have an R channel")
	}
}

func TestTexelChannelWeightVec4(t *testing.T) {
	got, ok := NewTexelU8(RgbA).ChannelWeightVec4()
	if !ok {
		t.Fatal("RgbA should have a channel-weight vec4")
	}
	want := [4]float32{1, 1, 1, 1}
	if got != want {
		t.Errorf("ChannelWeightVec4() = %v, want %v", got, want)
	}

	got, ok = NewTexelU8(Luma).ChannelWeightVec4()
	if !ok {
		t.Fatal("Luma should have a channel-weight vec4")
	}
	want = [4]float32{1, 0, 0, 0}
	if got != want {
		t.Errorf("ChannelWeightVec4() = %v, want %v", got, want)
	}
}

func TestNewChannelPosition(t *testing.T) {
	tests := []struct {
		channel ColorChannel
		wantIdx int
		wantOK  bool
	}{
		{ChannelR, 0, true},
		{ChannelG, 1, true},
		{ChannelB, 2, true},
		{ChannelA, 3, true},
		{ChannelLuma, 0, false},
	}
	for _, tt := range tests {
		pos, ok := NewChannelPosition(tt.channel)
		if ok != tt.wantOK {
			t.Fatalf("channel %v: ok = %v, want %v", tt.channel, ok, tt.wantOK)
		}
		if !ok {
			continue
		}
		v := pos.IntoVec4()
		for i, c := range v {
			if i == tt.wantIdx && c != 1 {
				t.Errorf("channel %v: IntoVec4()[%d] = %v, want 1", tt.channel, i, c)
			}
			if i != tt.wantIdx && c != 0 {
				t.Errorf("channel %v: IntoVec4()[%d] = %v, want 0", tt.channel, i, c)
			}
		}
	}
}

func TestSampleNumComponents(t *testing.T) {
	tests := []struct {
		parts SampleParts
		want  int
	}{
		{Luma, 1}, {LumaA, 2}, {Rgb, 3}, {Bgr, 3}, {RgbA, 4}, {BgrA, 4},
	}
	for _, tt := range tests {
		if got := tt.parts.NumComponents(); got != tt.want {
			t.Errorf("%v.NumComponents() = %d, want %d", tt.parts, got, tt.want)
		}
	}
}
