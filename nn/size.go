// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/window"
)

// Conv2DOutputSize returns the output edge length of a convolution:
//
//	(inSize - kernelSize + 2*padding) / stride + 1
//
// Under WithRigor the arguments are validated first (kernel size must be
// odd) and the size is returned together with the violations.
func Conv2DOutputSize(inSize, kernelSize, stride, padding int, opts ...Option) (int, error) {
	o := diag.Apply(opts)
	o.Dump("conv2d_output_size", "in_size", inSize, "kernel_size", kernelSize, "stride", stride, "padding", padding)
	var err error
	if o.Rigor {
		c := sizeChecker("conv2d_output_size", inSize, kernelSize, stride, padding)
		c.Require(kernelSize%2 == 1, "kernel_size odd", "kernel_size=%d", kernelSize)
		err = c.Err()
	}
	if stride < 1 {
		return 0, err
	}
	return window.ConvOutSize(inSize, kernelSize, stride, padding), err
}

// Deconv2DOutputSize returns the output edge length of a transposed convolution:
//
//	(inSize - 1)*stride - 2*padding + kernelSize
func Deconv2DOutputSize(inSize, kernelSize, stride, padding int, opts ...Option) (int, error) {
	o := diag.Apply(opts)
	o.Dump("deconv2d_output_size", "in_size", inSize, "kernel_size", kernelSize, "stride", stride, "padding", padding)
	var err error
	if o.Rigor {
		err = sizeChecker("deconv2d_output_size", inSize, kernelSize, stride, padding).Err()
	}
	return window.DeconvOutSize(inSize, kernelSize, stride, padding), err
}

// Pool2DOutputSize returns the output edge length of a pooling window,
// rounding up when ceil is set. Under WithRigor the kernel size must satisfy
// parity.
func Pool2DOutputSize(inSize, kernelSize, stride, padding int, ceil bool, parity Parity, opts ...Option) (int, error) {
	o := diag.Apply(opts)
	o.Dump("pool2d_output_size", "in_size", inSize, "kernel_size", kernelSize, "stride", stride,
		"padding", padding, "ceil_mode", ceil)
	var err error
	if o.Rigor {
		c := sizeChecker("pool2d_output_size", inSize, kernelSize, stride, padding)
		c.Require(parity.Accepts(kernelSize), "kernel_size "+parity.String(), "kernel_size=%d", kernelSize)
		err = c.Err()
	}
	if stride < 1 {
		return 0, err
	}
	return window.PoolOutSize(inSize, kernelSize, stride, padding, ceil), err
}

func sizeChecker(op string, inSize, kernelSize, stride, padding int) *diag.Checker {
	c := diag.NewChecker(op)
	c.Positive("in_size", inSize)
	c.Positive("kernel_size", kernelSize)
	c.Positive("stride", stride)
	c.NonNegative("padding", padding)
	return c
}
