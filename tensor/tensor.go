// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/dlr/internal/tensor"
)

// Numeric is the constraint for kernel element types.
type Numeric = tensor.Numeric

// DataType represents runtime type information for kernel buffers.
type DataType = tensor.DataType

// Supported data types.
const (
	Int32   = tensor.Int32
	Int64   = tensor.Int64
	Float32 = tensor.Float32
	Float64 = tensor.Float64
)

// Shape represents the logical dimensions of a buffer.
type Shape = tensor.Shape

// DataTypeOf returns the DataType of T.
//
// Example:
//
//	tensor.DataTypeOf[float32]() // tensor.Float32
func DataTypeOf[T Numeric]() DataType {
	return tensor.DataTypeOf[T]()
}

// CHW returns the shape of a square feature map [channels, size, size].
func CHW(channels, size int) Shape {
	return tensor.CHW(channels, size)
}

// OIHW returns the shape of a square kernel [outer, inner, kernelSize, kernelSize].
// Convolution kernels are [out_channel, in_channel, k, k]; transposed
// convolution kernels are [in_channel, out_channel, k, k].
func OIHW(outer, inner, kernelSize int) Shape {
	return tensor.OIHW(outer, inner, kernelSize)
}

// Channel returns the plane of channel c of a channel-major buffer.
func Channel[T Numeric](buf []T, c, planeSize int) []T {
	return tensor.Channel(buf, c, planeSize)
}
