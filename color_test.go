package imgcc

import "testing"

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func TestSelectColorConversionCases(t *testing.T) {
	rgb1 := RgbColor(Bt709, D65, Srgb)
	rgb2 := RgbColor(Bt2020, D65, Linear)
	rgbDifferentWP := RgbColor(Bt709, D50, Srgb)
	oklab := OklabColor()
	srlab2 := SrLab2Color(D65)

	tests := []struct {
		name    string
		from    Color
		to      Color
		want    ColorConversionKind
		wantErr bool
	}{
		{"rgb to rgb same whitepoint", rgb1, rgb2, ConvXYZ, false},
		{"rgb to rgb different whitepoint", rgb1, rgbDifferentWP, 0, true},
		{"rgb to oklab", rgb1, oklab, ConvXYZToOklab, false},
		{"oklab to rgb", oklab, rgb1, ConvOklabToXYZ, false},
		{"rgb to srlab2", rgb1, srlab2, ConvXYZToSrLab2, false},
		{"srlab2 to rgb", srlab2, rgb1, ConvSrLab2ToXYZ, false},
		{"oklab to srlab2 unhandled", oklab, srlab2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectColorConversion(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("conversion = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRGBToXYZRoundTrip(t *testing.T) {
	toXYZ := RGBToXYZ(Bt709, D65)
	toRGB := XYZToRGB(Bt709, D65)

	got := toRGB.MultiplyRight(toXYZ)
	if !got.ApproxEqual(IdentityMatrix(), 1e-9) {
		t.Errorf("XYZToRGB * RGBToXYZ = %+v, want identity", got)
	}
}

func TestRGBToXYZWhitePointMapsToUnitRGB(t *testing.T) {
	m := RGBToXYZ(Bt709, D65)
	inv, ok := m.Inv()
	if !ok {
		t.Fatal("RGBToXYZ(Bt709, D65) should be invertible")
	}
	wx, wy, wz := D65.xyz()
	r, g, b := inv.ApplyPoint3(wx, wy, wz)
	const eps = 1e-9
	if absFloat(r-1) > eps || absFloat(g-1) > eps || absFloat(b-1) > eps {
		t.Errorf("whitepoint round-trip = (%v, %v, %v), want (1,1,1)", r, g, b)
	}
}

func TestChromaticAdaptationIdentityWhenSameWhitepoint(t *testing.T) {
	for _, method := range []ChromaticAdaptationMethod{XyzScaling, VonKries, Bradford} {
		m, err := ChromaticAdaptationMatrix(method, D65, D65)
		if err != nil {
			t.Fatalf("method %v: %v", method, err)
		}
		if !m.ApproxEqual(IdentityMatrix(), 1e-9) {
			t.Errorf("method %v: adaptation D65->D65 = %+v, want identity", method, m)
		}
	}
}

func TestChromaticAdaptationBradfordNonLinearUnimplemented(t *testing.T) {
	if _, err := ChromaticAdaptationMatrix(BradfordNonLinear, D65, D50); err == nil {
		t.Error("BradfordNonLinear should be unimplemented")
	}
}

func TestChromaticAdaptationRoundTrip(t *testing.T) {
	forward, err := ChromaticAdaptationMatrix(Bradford, D65, D50)
	if err != nil {
		t.Fatal(err)
	}
	backward, err := ChromaticAdaptationMatrix(Bradford, D50, D65)
	if err != nil {
		t.Fatal(err)
	}
	got := backward.MultiplyRight(forward)
	if !got.ApproxEqual(IdentityMatrix(), 1e-6) {
		t.Errorf("adapt(D50<-D65) * adapt(D65<-D50) = %+v, want identity", got)
	}
}

func TestOklabForwardInverseMatrixRoundTrip(t *testing.T) {
	toLMS, toLab := OklabForwardMatrices()
	fromLab, fromLMS := OklabInverseMatrices()

	gotLab := fromLab.MultiplyRight(toLab)
	if !gotLab.ApproxEqual(IdentityMatrix(), 1e-6) {
		t.Errorf("fromLab * toLab = %+v, want identity", gotLab)
	}
	gotLMS := fromLMS.MultiplyRight(toLMS)
	if !gotLMS.ApproxEqual(IdentityMatrix(), 1e-6) {
		t.Errorf("fromLMS * toLMS = %+v, want identity", gotLMS)
	}
}

func TestSrLab2MatricesD65MatchesOklab(t *testing.T) {
	toLMS, toLab, err := SrLab2Matrices(D65)
	if err != nil {
		t.Fatal(err)
	}
	if !toLMS.ApproxEqual(oklabXYZToLMS, 1e-9) {
		t.Errorf("SrLab2Matrices(D65) toLMS = %+v, want Oklab's matrix (D65 is Oklab's own whitepoint)", toLMS)
	}
	if !toLab.ApproxEqual(oklabLMSToLab, 1e-12) {
		t.Errorf("SrLab2Matrices toLab = %+v, want oklabLMSToLab", toLab)
	}
}

func TestSrLab2MatricesD50Adapts(t *testing.T) {
	toLMS, _, err := SrLab2Matrices(D50)
	if err != nil {
		t.Fatalf("SrLab2Matrices(D50) unexpected error: %v", err)
	}
	if toLMS.ApproxEqual(oklabXYZToLMS, 1e-6) {
		t.Error("SrLab2Matrices(D50) should differ from the D65-referenced Oklab matrix")
	}
}

func TestRgbColorFields(t *testing.T) {
	c := RgbColor(Bt2020, D50, Linear)
	if c.Kind != ColorRgbKind || c.Primary != Bt2020 || c.Whitepoint != D50 || c.Transfer != Linear {
		t.Errorf("RgbColor fields = %+v, unexpected", c)
	}
}
