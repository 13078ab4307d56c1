package wgpuadapter

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/imgcc/gpucore"
)

// convertTextureFormat converts gpucore's texture format to the
// real wire format a device create-texture call needs. Grounded on
// backend/gogpu/adapter.go's convertTextureFormat: gpucore keeps its own
// format enum so the compiler and planner never depend on a specific
// backend's type, and each adapter translates at its own boundary.
func convertTextureFormat(format gpucore.TextureFormat) gputypes.TextureFormat {
	switch format {
	case gpucore.TextureFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case gpucore.TextureFormatRGBA8UnormSRGB:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case gpucore.TextureFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case gpucore.TextureFormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case gpucore.TextureFormatRG16Unorm:
		// gputypes has no 16-bit-normalized two-channel format; the
		// nearest real equivalent is the float variant used for the
		// same two-channel intermediates (e.g. chroma planes).
		return gputypes.TextureFormatRG16Float
	case gpucore.TextureFormatR32Float:
		return gputypes.TextureFormatR32Float
	case gpucore.TextureFormatRG32Float:
		return gputypes.TextureFormatRG32Float
	case gpucore.TextureFormatRGBA32Float:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// convertBufferUsage converts gpucore's usage bitmask to gputypes'. Unknown
// gpucore bits (there are none yet) are silently dropped rather than
// rejected, matching convertBufferUsage's own behavior in the teacher.
func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage
	if usage&gpucore.BufferUsageMapRead != 0 {
		result |= gputypes.BufferUsageMapRead
	}
	if usage&gpucore.BufferUsageMapWrite != 0 {
		result |= gputypes.BufferUsageMapWrite
	}
	if usage&gpucore.BufferUsageCopySrc != 0 {
		result |= gputypes.BufferUsageCopySrc
	}
	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageUniform != 0 {
		result |= gputypes.BufferUsageUniform
	}
	if usage&gpucore.BufferUsageStorage != 0 {
		result |= gputypes.BufferUsageStorage
	}
	return result
}
