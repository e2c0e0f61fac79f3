// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/dlr/internal/backend/cpu"
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
)

// Numeric is the constraint for kernel element types.
type Numeric = tensor.Numeric

// DataType identifies a kernel element type at runtime.
type DataType = tensor.DataType

// Shape describes the dimensions of a flat channel-major buffer.
type Shape = tensor.Shape

// Options

// Option configures one kernel call.
type Option = diag.Option

// Logger receives verbose parameter dumps and advisory warnings.
// *slog.Logger satisfies it.
type Logger = diag.Logger

// ParallelConfig controls data-parallel execution.
type ParallelConfig = parallel.Config

// PreconditionError describes one failed rigor-mode check.
type PreconditionError = diag.PreconditionError

// ErrPrecondition is matched by every error returned under WithRigor.
var ErrPrecondition = diag.ErrPrecondition

// NopLogger discards everything.
var NopLogger = diag.NopLogger

// WithRigor enables precondition checks.
func WithRigor() Option { return diag.WithRigor() }

// WithRigorIf enables precondition checks when on is true.
func WithRigorIf(on bool) Option { return diag.WithRigorIf(on) }

// WithVerbose enables parameter dumps.
func WithVerbose() Option { return diag.WithVerbose() }

// WithLogger routes dumps and warnings to l.
func WithLogger(l Logger) Option { return diag.WithLogger(l) }

// WithParallel enables data-parallel execution with cfg.
func WithParallel(cfg ParallelConfig) Option { return diag.WithParallel(cfg) }

// DefaultParallelConfig returns a configuration using every CPU.
func DefaultParallelConfig() ParallelConfig { return parallel.DefaultConfig() }

// Must panics if err is non-nil.
func Must(err error) { diag.Must(err) }

// Fused activations

// ActivationKind selects an activation function.
type ActivationKind = cpu.ActivationKind

// PostActivation is an activation fused into the output of a kernel.
type PostActivation = cpu.PostActivation

// Supported activations.
const (
	ActivationNone      = cpu.ActivationNone
	ActivationReLU      = cpu.ActivationReLU
	ActivationLeakyReLU = cpu.ActivationLeakyReLU
	ActivationSigmoid   = cpu.ActivationSigmoid
	ActivationTanh      = cpu.ActivationTanh
)

// Default leaky ReLU slopes and normalization epsilon.
const (
	DefaultNegativeSlope     = cpu.DefaultNegativeSlope
	DefaultNormNegativeSlope = cpu.DefaultNormNegativeSlope
	DefaultEpsilon           = cpu.DefaultEpsilon
)

// NoActivation returns the identity post-activation.
func NoActivation() PostActivation { return cpu.NoActivation() }

// ReLUActivation returns a fused ReLU.
func ReLUActivation() PostActivation { return cpu.ReLUActivation() }

// LeakyReLUActivation returns a fused leaky ReLU with the given negative slope.
func LeakyReLUActivation(slope float32) PostActivation { return cpu.LeakyReLUActivation(slope) }

// Layers

// Conv2DParams describes a square 2D convolution.
type Conv2DParams = cpu.Conv2DParams

// Conv2D computes a 2D convolution with zero padding.
//
// Example:
//
//	p := nn.Conv2DParams{OutSize: 4, InSize: 4, KernelSize: 3, InChannels: 1, OutChannels: 2, Stride: 1, Padding: 1}
//	err := nn.Conv2D(out, in, kernel, bias, p)
func Conv2D[T Numeric](out, in, kernel, bias []T, p Conv2DParams, opts ...Option) error {
	return cpu.Conv2D(out, in, kernel, bias, p, opts...)
}

// Deconv2DParams describes a square 2D transposed convolution.
type Deconv2DParams = cpu.Deconv2DParams

// Deconv2D computes a 2D transposed convolution.
func Deconv2D[T Numeric](out, in, kernel, bias []T, p Deconv2DParams, opts ...Option) error {
	return cpu.Deconv2D(out, in, kernel, bias, p, opts...)
}

// Pool2DParams describes square max or average pooling.
type Pool2DParams = cpu.Pool2DParams

// Parity constrains the pooling kernel size under rigor mode.
type Parity = cpu.Parity

// Kernel size parities.
const (
	ParityAny  = cpu.ParityAny
	ParityEven = cpu.ParityEven
	ParityOdd  = cpu.ParityOdd
)

// MaxPool2D computes 2D max pooling. Padding cells are ignored.
func MaxPool2D[T Numeric](out, in []T, p Pool2DParams, opts ...Option) error {
	return cpu.MaxPool2D(out, in, p, opts...)
}

// AvgPool2D computes 2D average pooling. The divisor is always the full
// kernel area, padding cells included.
func AvgPool2D[T Numeric](out, in []T, p Pool2DParams, opts ...Option) error {
	return cpu.AvgPool2D(out, in, p, opts...)
}

// Activations

// ActivationParams describes the shape of an element-wise activation buffer.
type ActivationParams = cpu.ActivationParams

// ReLU computes max(x, 0).
func ReLU[T Numeric](out, in []T, p ActivationParams, opts ...Option) error {
	return cpu.ReLU(out, in, p, opts...)
}

// LeakyReLU computes x for x >= 0 and slope*x otherwise.
func LeakyReLU[T Numeric](out, in []T, p ActivationParams, slope float32, opts ...Option) error {
	return cpu.LeakyReLU(out, in, p, slope, opts...)
}

// Sigmoid computes 1 / (1 + exp(-x)).
func Sigmoid[T Numeric](out, in []T, p ActivationParams, opts ...Option) error {
	return cpu.Sigmoid(out, in, p, opts...)
}

// Tanh computes the hyperbolic tangent.
func Tanh[T Numeric](out, in []T, p ActivationParams, opts ...Option) error {
	return cpu.Tanh(out, in, p, opts...)
}

// Activate applies act element-wise.
func Activate[T Numeric](out, in []T, p ActivationParams, act PostActivation, opts ...Option) error {
	return cpu.Activate(out, in, p, act, opts...)
}

// LinearParams describes a fully connected layer.
type LinearParams = cpu.LinearParams

// Linear computes out = weight*in + bias for one vector.
func Linear[T Numeric](out, in, weight, bias []T, p LinearParams, opts ...Option) error {
	return cpu.Linear(out, in, weight, bias, p, opts...)
}

// LinearNd applies the same linear layer to p.NDim consecutive vectors.
func LinearNd[T Numeric](out, in, weight, bias []T, p LinearParams, opts ...Option) error {
	return cpu.LinearNd(out, in, weight, bias, p, opts...)
}

// NormParams describes inference-time batch normalization.
type NormParams = cpu.NormParams

// Norm1DBatch normalizes [Channels, Size] with running statistics.
func Norm1DBatch[T Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...Option) error {
	return cpu.Norm1DBatch(out, in, mean, variance, scale, bias, p, opts...)
}

// Norm2DBatch normalizes [Channels, Size] with running statistics.
func Norm2DBatch[T Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...Option) error {
	return cpu.Norm2DBatch(out, in, mean, variance, scale, bias, p, opts...)
}

// Norm3DBatch normalizes [Channels, Size, Size] with running statistics.
func Norm3DBatch[T Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...Option) error {
	return cpu.Norm3DBatch(out, in, mean, variance, scale, bias, p, opts...)
}

// Concat2DParams describes the concatenation of two matrices.
type Concat2DParams = cpu.Concat2DParams

// Concat2D concatenates a and b along p.Dim.
func Concat2D[T Numeric](out, a, b []T, p Concat2DParams, opts ...Option) error {
	return cpu.Concat2D(out, a, b, p, opts...)
}

// Batch applies fn to each of n samples of a minibatch.
//
// Example:
//
//	err := nn.Batch(n, 3*32*32, 8*32*32, out, in, func(o, x []float32) error {
//	    return nn.Conv2D(o, x, kernel, bias, p)
//	})
func Batch[T Numeric](n, inStride, outStride int, out, in []T, fn func(out, in []T) error) error {
	return cpu.Batch(n, inStride, outStride, out, in, fn)
}
