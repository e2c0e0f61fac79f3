package webgpu

import (
	"encoding/binary"
	"math"

	"github.com/born-ml/dlr/internal/backend/cpu"
	"github.com/born-ml/dlr/internal/tensor"
)

// Pooling modes understood by pool2dShader.
const (
	poolMax uint32 = 0
	poolAvg uint32 = 1
)

// uniform packs 32-bit shader parameters in declaration order.
// Uniform buffers require 16-byte alignment, so bytes pads the block.
type uniform struct {
	buf []byte
}

func (u *uniform) u32(v int) *uniform {
	//nolint:gosec // G115: shape parameters are validated non-negative
	u.buf = binary.LittleEndian.AppendUint32(u.buf, uint32(v))
	return u
}

func (u *uniform) f32(v float32) *uniform {
	u.buf = binary.LittleEndian.AppendUint32(u.buf, math.Float32bits(v))
	return u
}

func (u *uniform) bytes() []byte {
	size := max((len(u.buf)+15)&^15, 16) // Round up to 16-byte boundary
	out := make([]byte, size)
	copy(out, u.buf)
	return out
}

func conv2dUniform(p cpu.Conv2DParams) []byte {
	u := &uniform{}
	u.u32(p.OutSize).u32(p.InSize).u32(p.KernelSize).u32(p.InChannels).u32(p.OutChannels).u32(p.Stride).u32(p.Padding)
	return u.bytes()
}

func deconv2dUniform(p cpu.Deconv2DParams) []byte {
	u := &uniform{}
	u.u32(p.OutSize).u32(p.InSize).u32(p.KernelSize).u32(p.InChannels).u32(p.OutChannels).u32(p.Stride).u32(p.Padding)
	return u.bytes()
}

func pool2dUniform(p cpu.Pool2DParams, mode uint32) []byte {
	u := &uniform{}
	u.u32(p.OutSize).u32(p.InSize).u32(p.KernelSize).u32(p.Channels).u32(p.Stride).u32(p.Padding)
	u.u32(int(mode)).u32(int(p.Post.Kind)).f32(p.Post.Slope)
	return u.bytes()
}

func activationUniform(n int, act cpu.PostActivation) []byte {
	u := &uniform{}
	u.u32(n).u32(int(act.Kind)).f32(act.Slope)
	return u.bytes()
}

// elemSize is the byte size of one shader element.
var elemSize = tensor.Float32.Size()

// byteSize returns the byte length of n shader elements.
func byteSize(n int) uint64 {
	//nolint:gosec // G115: buffer lengths are non-negative
	return uint64(n * elemSize)
}

// float32Bytes encodes data as little-endian bytes for upload.
func float32Bytes(data []float32) []byte {
	out := make([]byte, byteSize(len(data)))
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*elemSize:], math.Float32bits(v))
	}
	return out
}

// decodeFloat32 fills dst from little-endian bytes read back from the GPU.
func decodeFloat32(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*elemSize:]))
	}
}

// biasOrZeros returns bias, or n zeros when the bias is absent.
// Storage bindings cannot be empty.
func biasOrZeros(bias []float32, n int) []float32 {
	if len(bias) != 0 {
		return bias
	}
	return make([]float32, n)
}

// groups returns the number of workgroups covering n invocations.
func groups(n, size int) uint32 {
	//nolint:gosec // G115: workgroup count is non-negative
	return uint32((n + size - 1) / size)
}
