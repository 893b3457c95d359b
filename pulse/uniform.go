package pulse

import (
	"unsafe"

	"github.com/oliverbestmann/webgpu/wgpu"
)

// WriteValue copies the memory of value to the start of buffer. T must
// have a host layout matching the shader side struct.
func WriteValue[T any](ctx *Context, buffer *wgpu.Buffer, value *T) error {
	raw := unsafe.Slice((*byte)(unsafe.Pointer(value)), unsafe.Sizeof(*value))
	return ctx.WriteBuffer(buffer, 0, raw)
}
