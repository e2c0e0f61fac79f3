// Package webgpu runs the float32 window kernels and activations on a GPU.
//
// The backend uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO
// WebGPU bindings and is only built on windows, where the wgpu_native
// library is distributed. On other platforms New returns ErrUnavailable.
//
// Results follow the CPU kernels: the same parameter structs, the same
// rigor checks, the same padding and averaging conventions. Shaders compute
// in f32 throughout, so sigmoid and tanh can differ from the CPU's
// double-precision evaluation in the last bits.
package webgpu

import "errors"

// ErrUnavailable is returned when no WebGPU device can be used.
var ErrUnavailable = errors.New("webgpu: not available")
