//go:build sourcegen

// Package sourcegen compiles the catalogue's WGSL reference sources to
// SPIR-V once, offline, via naga. It is not part of the compiled core —
// shader.BuiltinSet is always supplied as opaque bytes at link time (see
// shader/catalogue.go's BuiltinSet doc comment) — this package is the "real
// build pipeline" that doc comment refers to, invoked by `go generate` or a
// one-off `go run` under the sourcegen build tag, never by imgcc itself.
package sourcegen

import (
	"fmt"

	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/naga/wgsl"

	"github.com/gogpu/imgcc/shader"
)

// source is one catalogue family's WGSL reference implementation, keyed by
// the BuiltinSet field it fills.
type source struct {
	field string
	wgsl  string
}

// sources lists the catalogue families in shader.BuiltinSet field order.
// Each entry is a minimal fragment entry point matching the family's
// contract: a fullscreen or selection-painted shader sampling zero or more
// bound textures and writing one RGBA result, parameterized by the uniform
// block shader.Invocation.BinaryData packs.
var sources = []source{
	{"PaintOnTopCopy", `
@group(0) @binding(0) var src: texture_2d<f32>;
@group(0) @binding(1) var samp: sampler;
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    return textureLoad(src, vec2<i32>(pos.xy), 0);
}
`},
	{"LinearColorMatrix", `
struct Params { m: mat3x3<f32>; };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let texel = textureLoad(src, vec2<i32>(pos.xy), 0);
    let rgb = params.m * texel.rgb;
    return vec4<f32>(rgb, texel.a);
}
`},
	{"Box3", `
struct Params { k: mat3x3<f32>; };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    var acc = vec3<f32>(0.0, 0.0, 0.0);
    for (var dy = -1; dy <= 1; dy = dy + 1) {
        for (var dx = -1; dx <= 1; dx = dx + 1) {
            let p = vec2<i32>(pos.xy) + vec2<i32>(dx, dy);
            acc = acc + textureLoad(src, p, 0).rgb * params.k[dy + 1][dx + 1];
        }
    }
    return vec4<f32>(acc, 1.0);
}
`},
	{"OklabEncode", oklabWGSL(true)},
	{"OklabDecode", oklabWGSL(false)},
	{"Srlab2Encode", srlab2WGSL(true)},
	{"Srlab2Decode", srlab2WGSL(false)},
	{"Bilinear", `
@group(0) @binding(0) var src: texture_2d<f32>;
@group(0) @binding(1) var samp: sampler;
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(src, samp, uv);
}
`},
	{"Inject", `
@group(0) @binding(0) var above: texture_2d<f32>;
@group(0) @binding(1) var samp: sampler;
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(above, samp, uv);
}
`},
	{"Palette", `
@group(0) @binding(0) var indices: texture_2d<f32>;
@group(0) @binding(1) var colors: texture_2d<f32>;
@group(0) @binding(2) var samp: sampler;
@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let i = textureSample(indices, samp, uv).r;
    return textureSample(colors, samp, vec2<f32>(i, 0.5));
}
`},
	{"SolidRGB", `
struct Params { color: vec4<f32>; };
@group(0) @binding(0) var<uniform> params: Params;
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return params.color;
}
`},
	{"DistributionNormal2d", `
struct Params { seed: u32; };
@group(0) @binding(0) var<uniform> params: Params;
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let n = fract(sin(dot(pos.xy, vec2<f32>(12.9898, 78.233)) + f32(params.seed)) * 43758.5453);
    return vec4<f32>(n, n, n, 1.0);
}
`},
	{"FractalNoise", `
struct Params { seed: u32; octaves: u32; };
@group(0) @binding(0) var<uniform> params: Params;
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    var acc = 0.0;
    var amp = 0.5;
    var p = pos.xy;
    for (var o = 0u; o < params.octaves; o = o + 1u) {
        acc = acc + amp * fract(sin(dot(p, vec2<f32>(12.9898, 78.233)) + f32(params.seed)) * 43758.5453);
        p = p * 2.0;
        amp = amp * 0.5;
    }
    return vec4<f32>(acc, acc, acc, 1.0);
}
`},
}

func oklabWGSL(encode bool) string {
	dir := "xyz_to_oklab"
	if !encode {
		dir = "oklab_to_xyz"
	}
	return fmt.Sprintf(`
struct Params { m: mat3x3<f32>; };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
// %s
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let texel = textureLoad(src, vec2<i32>(pos.xy), 0);
    return vec4<f32>(params.m * texel.rgb, texel.a);
}
`, dir)
}

func srlab2WGSL(encode bool) string {
	dir := "xyz_to_srlab2"
	if !encode {
		dir = "srlab2_to_xyz"
	}
	return fmt.Sprintf(`
struct Params { whitepoint: vec4<f32>; m: mat3x3<f32>; };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var src: texture_2d<f32>;
// %s
@fragment
fn fs_main(@builtin(position) pos: vec4<f32>) -> @location(0) vec4<f32> {
    let texel = textureLoad(src, vec2<i32>(pos.xy), 0);
    return vec4<f32>(params.m * texel.rgb, texel.a);
}
`, dir)
}

// compile lowers one WGSL source to an *ir.Module and emits SPIR-V for it,
// mirroring naga's own snapshot test pipeline (lexer -> parser -> lower ->
// spirv.Backend.Compile).
func compile(src string) ([]byte, error) {
	lexer := wgsl.NewLexer(src)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("sourcegen: tokenize: %w", err)
	}

	parser := wgsl.NewParser(tokens)
	ast, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("sourcegen: parse: %w", err)
	}

	module, err := wgsl.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("sourcegen: lower: %w", err)
	}

	return compileModule(module)
}

func compileModule(module *ir.Module) ([]byte, error) {
	backend := spirv.NewBackend(spirv.DefaultOptions())
	spv, err := backend.Compile(module)
	if err != nil {
		return nil, fmt.Errorf("sourcegen: spirv compile: %w", err)
	}
	return spv, nil
}

// Generate compiles every catalogue family's WGSL reference source and
// returns the resulting BuiltinSet, ready to hand to compiler.Link in place
// of shader.StubBuiltinSet.
func Generate() (shader.BuiltinSet, error) {
	compiled := make(map[string][]byte, len(sources))
	for _, s := range sources {
		spv, err := compile(s.wgsl)
		if err != nil {
			return shader.BuiltinSet{}, fmt.Errorf("sourcegen: %s: %w", s.field, err)
		}
		compiled[s.field] = spv
	}

	return shader.BuiltinSet{
		PaintOnTopCopy:       compiled["PaintOnTopCopy"],
		LinearColorMatrix:    compiled["LinearColorMatrix"],
		Box3:                 compiled["Box3"],
		OklabEncode:          compiled["OklabEncode"],
		OklabDecode:          compiled["OklabDecode"],
		Srlab2Encode:         compiled["Srlab2Encode"],
		Srlab2Decode:         compiled["Srlab2Decode"],
		Bilinear:             compiled["Bilinear"],
		Inject:               compiled["Inject"],
		Palette:              compiled["Palette"],
		SolidRGB:             compiled["SolidRGB"],
		DistributionNormal2d: compiled["DistributionNormal2d"],
		FractalNoise:         compiled["FractalNoise"],
	}, nil
}
