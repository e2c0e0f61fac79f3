// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layer kernels of dlr: convolution, transposed
// convolution, pooling, activations, linear layers, batch normalization
// and concatenation.
//
// # Overview
//
// Every kernel reads caller-owned input buffers and writes a caller-owned
// output buffer of the shape described by its parameter struct. Kernels
// never allocate output memory and keep no reference to the buffers after
// returning.
//
// Tensors are flat slices in channel-major order:
//   - feature maps: [channel, row, column]
//   - convolution kernels: [out_channel, in_channel, k, k]
//   - transposed convolution kernels: [in_channel, out_channel, k, k]
//   - linear weights: [out_size, in_size]
//
// Kernels are generic over int32, int64, float32 and float64.
//
// # Basic Usage
//
//	import "github.com/born-ml/dlr/nn"
//
//	func main() {
//	    in := make([]float32, 3*32*32)
//	    kernel := make([]float32, 16*3*3*3)
//	    bias := make([]float32, 16)
//
//	    p := nn.Conv2DParams{
//	        InSize: 32, KernelSize: 3, Stride: 1, Padding: 1,
//	        InChannels: 3, OutChannels: 16,
//	    }
//	    p.OutSize, _ = nn.Conv2DOutputSize(p.InSize, p.KernelSize, p.Stride, p.Padding)
//
//	    out := make([]float32, 16*p.OutSize*p.OutSize)
//	    if err := nn.Conv2D(out, in, kernel, bias, p, nn.WithRigor()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Diagnostics
//
// Kernels trust their arguments by default. WithRigor validates shapes and
// buffer lengths before any work and returns an error wrapping
// ErrPrecondition. WithVerbose logs the call parameters through the
// configured Logger (a log/slog text logger on stderr unless WithLogger is
// given).
//
// # Parallelism
//
// Kernels run sequentially unless WithParallel is given. The work is split
// across independent outputs, so results do not depend on the worker count.
package nn
