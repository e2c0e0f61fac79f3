package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// Parity constrains the pooling kernel size under rigor mode.
type Parity uint8

// Kernel parity choices.
const (
	ParityAny  Parity = iota // no parity requirement
	ParityEven               // kernel_size must be even
	ParityOdd                // kernel_size must be odd
)

// String returns the parity name.
func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "any"
	}
}

// Accepts reports whether k satisfies the parity.
func (p Parity) Accepts(k int) bool {
	switch p {
	case ParityEven:
		return k%2 == 0
	case ParityOdd:
		return k%2 == 1
	default:
		return true
	}
}

// Pool2DParams describes square max or average pooling.
//
// Buffers:
//
//	out [Channels, OutSize, OutSize]
//	in  [Channels, InSize, InSize]
type Pool2DParams struct {
	OutSize      int
	InSize       int
	KernelSize   int
	Channels     int
	Stride       int
	Padding      int
	CeilMode     bool           // round the output size up instead of down
	KernelParity Parity         // rigor-mode kernel size constraint
	Post         PostActivation // fused activation applied to each pooled value
}

// ExpectedOutSize returns the output size implied by the geometry and CeilMode.
func (p Pool2DParams) ExpectedOutSize() int {
	return window.PoolOutSize(p.InSize, p.KernelSize, p.Stride, p.Padding, p.CeilMode)
}

// Validate runs the rigor-mode checks against the given buffer lengths.
// The declared output size is not checked here; see Pool2DParams.SizeMismatch.
func (p Pool2DParams) Validate(op string, outLen, inLen int) error {
	c := diag.NewChecker(op)
	c.Dims(tensor.Shape{p.Channels, p.InSize, p.OutSize, p.KernelSize},
		"channel", "in_size", "out_size", "kernel_size")
	c.Require(p.KernelParity.Accepts(p.KernelSize), "kernel_size "+p.KernelParity.String(),
		"kernel_size=%d", p.KernelSize)
	c.Positive("stride", p.Stride)
	c.NonNegative("padding", p.Padding)
	c.Require(p.Padding <= p.KernelSize/2, "padding <= kernel_size/2",
		"padding=%d kernel_size=%d", p.Padding, p.KernelSize)
	c.Require(p.Post.fusable(), "post activation none, relu or leaky_relu", "post=%s", p.Post)
	c.Len("out_data", outLen, tensor.CHW(p.Channels, p.OutSize).NumElements())
	c.Len("in_data", inLen, tensor.CHW(p.Channels, p.InSize).NumElements())
	return c.Err()
}

// SizeMismatch reports whether the declared OutSize differs from
// ExpectedOutSize. The kernels treat a mismatch as advisory.
func (p Pool2DParams) SizeMismatch() bool {
	return p.Stride > 0 && p.OutSize != p.ExpectedOutSize()
}

func (p Pool2DParams) attrs() []any {
	return []any{
		"out_size", p.OutSize,
		"in_size", p.InSize,
		"kernel_size", p.KernelSize,
		"channel", p.Channels,
		"stride", p.Stride,
		"padding", p.Padding,
		"ceil_mode", p.CeilMode,
		"post", p.Post.String(),
	}
}

func (p Pool2DParams) geometry() window.Geometry {
	return window.Geometry{
		InSize:     p.InSize,
		KernelSize: p.KernelSize,
		Stride:     p.Stride,
		Padding:    p.Padding,
	}
}

// check runs the shared rigor prologue of both pooling kernels.
func (p Pool2DParams) check(op string, o diag.Options, outLen, inLen int) error {
	if !o.Rigor {
		return nil
	}
	if err := p.Validate(op, outLen, inLen); err != nil {
		return err
	}
	if p.SizeMismatch() {
		o.Warn(op, "out_size does not match computed output size",
			"declared", p.OutSize, "expected", p.ExpectedOutSize(), "ceil_mode", p.CeilMode)
	}
	return nil
}

// poolReduce visits every output cell of every channel and stores
// Post(reduce(window)). Work is split across (channel, row) pairs.
func poolReduce[T tensor.Numeric](out, in []T, p Pool2DParams, cfg parallel.Config, reduce func(src []T, g window.Geometry, r, c int) T) {
	g := p.geometry()
	inPlane := p.InSize * p.InSize
	outPlane := p.OutSize * p.OutSize

	parallel.ForBatch(p.Channels, p.OutSize, func(ch, r int) {
		src := tensor.Channel(in, ch, inPlane)
		dstRow := tensor.Row(tensor.Channel(out, ch, outPlane), r, p.OutSize)
		for c := range dstRow {
			dstRow[c] = Apply(p.Post, reduce(src, g, r, c))
		}
	}, cfg)
}
