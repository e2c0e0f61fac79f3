// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated layer kernels.
//
// The backend runs Conv2D, Deconv2D, MaxPool2D, AvgPool2D and the
// element-wise activations on float32 buffers, with the same parameter
// structs and options as package nn. It is built on windows, where the
// wgpu_native library is distributed; elsewhere New returns ErrUnavailable.
//
// Example:
//
//	import (
//	    "github.com/born-ml/dlr/backend/webgpu"
//	    "github.com/born-ml/dlr/nn"
//	)
//
//	func conv(out, in, kernel, bias []float32, p nn.Conv2DParams) error {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        return nn.Conv2D(out, in, kernel, bias, p)
//	    }
//	    defer gpu.Release()
//	    return gpu.Conv2D(out, in, kernel, bias, p)
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/dlr/internal/backend/webgpu"
)

// Backend represents the WebGPU backend implementation for GPU-accelerated
// layer kernels.
type Backend = internalwebgpu.Backend

// ErrUnavailable is returned when no WebGPU device can be used.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// New creates a new WebGPU backend.
//
// This function initializes the WebGPU device and returns a backend
// ready for kernel calls. Call Release() when done to free GPU resources.
//
// Returns an error wrapping ErrUnavailable if WebGPU initialization fails
// (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
//
// It's useful for graceful fallback to the CPU kernels when GPU is not
// available.
//
// Example:
//
//	if webgpu.IsAvailable() {
//	    gpu, _ := webgpu.New()
//	    defer gpu.Release()
//	    err = gpu.MaxPool2D(out, in, p)
//	} else {
//	    err = nn.MaxPool2D(out, in, p)
//	}
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
