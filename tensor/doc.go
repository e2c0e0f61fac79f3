// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor describes the element types and buffer layouts of dlr.
//
// # Overview
//
// dlr kernels work on flat Go slices, not on tensor objects. This package
// provides what is needed to size and address those slices:
//   - Numeric: the element types every kernel accepts
//   - DataType: runtime type information, as printed in verbose dumps
//   - Shape: logical dimensions with element counts and strides
//   - CHW and OIHW: the channel-major feature map and kernel layouts
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/dlr/nn"
//	    "github.com/born-ml/dlr/tensor"
//	)
//
//	func main() {
//	    in := make([]float32, tensor.CHW(3, 32).NumElements())
//	    kernel := make([]float32, tensor.OIHW(16, 3, 3).NumElements())
//	    out := make([]float32, tensor.CHW(16, 32).NumElements())
//	    _ = nn.Conv2D(out, in, kernel, nil, p)
//	}
package tensor
