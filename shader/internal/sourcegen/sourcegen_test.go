//go:build sourcegen

package sourcegen

import "testing"

func TestGenerateProducesNonEmptyModuleForEveryFamily(t *testing.T) {
	set, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	families := map[string][]byte{
		"PaintOnTopCopy":       set.PaintOnTopCopy,
		"LinearColorMatrix":    set.LinearColorMatrix,
		"Box3":                 set.Box3,
		"OklabEncode":          set.OklabEncode,
		"OklabDecode":          set.OklabDecode,
		"Srlab2Encode":         set.Srlab2Encode,
		"Srlab2Decode":         set.Srlab2Decode,
		"Bilinear":             set.Bilinear,
		"Inject":               set.Inject,
		"Palette":              set.Palette,
		"SolidRGB":             set.SolidRGB,
		"DistributionNormal2d": set.DistributionNormal2d,
		"FractalNoise":         set.FractalNoise,
	}
	for name, spv := range families {
		if len(spv) == 0 {
			t.Errorf("%s: compiled to zero SPIR-V bytes", name)
		}
	}
}
