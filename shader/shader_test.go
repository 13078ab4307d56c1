package shader

import (
	"testing"

	"github.com/gogpu/imgcc"
)

func TestLinearColorMatrixBinaryDataLayout(t *testing.T) {
	m := imgcc.NewAffine2D(1, 2, 3, 4, 5, 6)
	s := LinearColorMatrix{Matrix: m, Spirv: []byte{1, 2, 3}}

	key, ok := s.Key()
	if !ok || key != KeyLinearColorMatrix() {
		t.Errorf("Key() = %v, %v, want KeyLinearColorMatrix, true", key, ok)
	}

	var buf []byte
	start, n, ok := s.BinaryData(&buf)
	if !ok {
		t.Fatal("BinaryData should produce data")
	}
	if n != 12*4 {
		t.Errorf("packed length = %d, want %d (12 floats)", n, 12*4)
	}
	if start != 0 {
		t.Errorf("start = %d, want 0 on an empty buffer", start)
	}
	if s.NumArgs() != 1 {
		t.Errorf("NumArgs() = %d, want 1", s.NumArgs())
	}
}

func TestBilinearMGridPacksSixVec4s(t *testing.T) {
	s := MGrid(100, 50)
	var buf []byte
	_, n, ok := s.BinaryData(&buf)
	if !ok {
		t.Fatal("BinaryData should produce data")
	}
	if n != 6*4*4 {
		t.Errorf("packed length = %d, want %d (six vec4s)", n, 6*4*4)
	}
	if s.NumArgs() != 0 {
		t.Errorf("Bilinear.NumArgs() = %d, want 0", s.NumArgs())
	}
}

func TestInjectPacksTwoVec4s(t *testing.T) {
	s := Inject{Mix: [4]float32{1, 0, 0, 0}, Color: [4]float32{0, 1, 0, 0}}
	var buf []byte
	_, n, ok := s.BinaryData(&buf)
	if !ok {
		t.Fatal("BinaryData should produce data")
	}
	if n != 2*4*4 {
		t.Errorf("packed length = %d, want %d", n, 2*4*4)
	}
	if s.NumArgs() != 2 {
		t.Errorf("Inject.NumArgs() = %d, want 2", s.NumArgs())
	}
}

func TestPaletteNumArgsAndLayout(t *testing.T) {
	s := Palette{XCoord: [4]float32{1, 0, 0, 0}, YCoord: [4]float32{0, 1, 0, 0}}
	var buf []byte
	_, n, ok := s.BinaryData(&buf)
	if !ok {
		t.Fatal("BinaryData should produce data")
	}
	if n != 8*4 {
		t.Errorf("packed length = %d, want %d (mat4x2)", n, 8*4)
	}
	if s.NumArgs() != 2 {
		t.Errorf("Palette.NumArgs() = %d, want 2", s.NumArgs())
	}
}

func TestSolidRGBKeyIsAlwaysAbsent(t *testing.T) {
	s := SolidRGB{Color: [4]float32{1, 0, 0, 1}}
	if _, ok := s.Key(); ok {
		t.Error("SolidRGB.Key() should always be absent so its module is never cached")
	}
}

func TestSrlab2TransformPacksWhitepointThenMatrix(t *testing.T) {
	s := Srlab2Transform{
		Matrix:     imgcc.IdentityMatrix(),
		Whitepoint: imgcc.D50,
		Direction:  Encode,
	}
	var buf []byte
	_, n, ok := s.BinaryData(&buf)
	if !ok {
		t.Fatal("BinaryData should produce data")
	}
	// 4 floats for whitepoint + 12 floats for the matrix.
	if n != 16*4 {
		t.Errorf("packed length = %d, want %d", n, 16*4)
	}
}

func TestKeysDistinguishDirectionAndStage(t *testing.T) {
	if KeyOklabTransform(Encode) == KeyOklabTransform(Decode) {
		t.Error("Encode and Decode Oklab keys should differ")
	}
	if KeyConvert(Encode, StageWiden) == KeyConvert(Decode, StageWiden) {
		t.Error("Convert keys with different directions should differ")
	}
	if KeyConvert(Encode, StageWiden) == KeyConvert(Encode, StageNarrow) {
		t.Error("Convert keys with different stages should differ")
	}
}

func TestRuntimeKeyRequiresNonEmptySpirv(t *testing.T) {
	if _, ok := (Runtime{}).Key(); ok {
		t.Error("a Runtime with no SPIR-V bytes should not produce a cache key")
	}
	r := Runtime{Spirv: []byte{1}, Args: 2}
	if _, ok := r.Key(); !ok {
		t.Error("a Runtime with SPIR-V bytes should produce a cache key")
	}
	if r.NumArgs() != 2 {
		t.Errorf("NumArgs() = %d, want 2", r.NumArgs())
	}
}

func TestRuntimeKeyStableAcrossCalls(t *testing.T) {
	spirv := []byte{9, 9, 9}
	r := Runtime{Spirv: spirv}
	k1, _ := r.Key()
	k2, _ := r.Key()
	if k1 != k2 {
		t.Error("Key() should be stable across repeated calls on the same backing array")
	}
}
