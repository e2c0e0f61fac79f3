package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// Conv2DParams describes a square 2D convolution.
//
// Buffers:
//
//	out    [OutChannels, OutSize, OutSize]
//	in     [InChannels, InSize, InSize]
//	kernel [OutChannels, InChannels, KernelSize, KernelSize]
//	bias   [OutChannels] or empty
type Conv2DParams struct {
	OutSize     int
	InSize      int
	KernelSize  int
	InChannels  int
	OutChannels int
	Stride      int
	Padding     int
}

// ExpectedOutSize returns floor((InSize - KernelSize + 2*Padding)/Stride) + 1.
func (p Conv2DParams) ExpectedOutSize() int {
	return window.ConvOutSize(p.InSize, p.KernelSize, p.Stride, p.Padding)
}

// Validate runs the rigor-mode checks against the given buffer lengths.
func (p Conv2DParams) Validate(outLen, inLen, kernelLen, biasLen int) error {
	c := diag.NewChecker("conv2d")
	c.Dims(tensor.Shape{p.InChannels, p.OutChannels, p.InSize, p.KernelSize},
		"in_channel", "out_channel", "in_size", "kernel_size")
	c.Positive("stride", p.Stride)
	c.Require(p.KernelSize%2 == 1, "kernel_size odd", "kernel_size=%d", p.KernelSize)
	c.NonNegative("padding", p.Padding)
	c.Require(p.Padding <= p.KernelSize/2, "padding <= kernel_size/2",
		"padding=%d kernel_size=%d", p.Padding, p.KernelSize)
	if p.Stride > 0 {
		c.Require(p.OutSize == p.ExpectedOutSize(), "out_size == (in_size-kernel_size+2*padding)/stride+1",
			"out_size=%d expected=%d", p.OutSize, p.ExpectedOutSize())
	}
	c.OptionalLen("bias", biasLen, p.OutChannels)
	c.Len("out_data", outLen, tensor.CHW(p.OutChannels, p.OutSize).NumElements())
	c.Len("in_data", inLen, tensor.CHW(p.InChannels, p.InSize).NumElements())
	c.Len("kernel", kernelLen, tensor.OIHW(p.OutChannels, p.InChannels, p.KernelSize).NumElements())
	return c.Err()
}

func (p Conv2DParams) attrs(biasLen int) []any {
	return []any{
		"out_size", p.OutSize,
		"in_size", p.InSize,
		"kernel_size", p.KernelSize,
		"bias_size", biasLen,
		"in_channel", p.InChannels,
		"out_channel", p.OutChannels,
		"stride", p.Stride,
		"padding", p.Padding,
	}
}

func (p Conv2DParams) geometry() window.Geometry {
	return window.Geometry{
		InSize:     p.InSize,
		KernelSize: p.KernelSize,
		Stride:     p.Stride,
		Padding:    p.Padding,
	}
}

// Conv2D performs a square 2D convolution with virtual zero padding.
//
// Every output channel is first filled with its bias (zero when bias is
// empty), then each input channel's windowed dot products are added into the
// existing output values. Kernel positions that fall in the padding border
// are skipped and never read.
//
// Example (3x3 input, 2x2 identity-diagonal kernel, stride 1):
//
//	1 2 3                 6  8
//	4 5 6  * [1 0; 0 1] = 12 14
//	7 8 9
func Conv2D[T tensor.Numeric](out, in, kernel, bias []T, p Conv2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("conv2d", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs(len(bias))...)...)
	if o.Rigor {
		if err := p.Validate(len(out), len(in), len(kernel), len(bias)); err != nil {
			return err
		}
	}

	g := p.geometry()
	inPlane := p.InSize * p.InSize
	outPlane := p.OutSize * p.OutSize
	kernelArea := p.KernelSize * p.KernelSize
	filterSize := p.InChannels * kernelArea

	parallel.For(p.OutChannels, func(f int) {
		dst := tensor.Channel(out, f, outPlane)
		tensor.Fill(dst, biasAt(bias, f))

		filter := tensor.Channel(kernel, f, filterSize)
		for ch := 0; ch < p.InChannels; ch++ {
			conv2dPlane(dst, tensor.Channel(in, ch, inPlane), tensor.Channel(filter, ch, kernelArea), g, p.OutSize)
		}
	}, o.Parallel)

	return nil
}

// conv2dPlane accumulates one input plane convolved with one kernel slice
// into dst.
func conv2dPlane[T tensor.Numeric](dst, src, w []T, g window.Geometry, outSize int) {
	k := g.KernelSize
	for r := 0; r < outSize; r++ {
		rowOrigin := g.Origin(r)
		rlo, rhi := g.Span(r)
		dstRow := tensor.Row(dst, r, outSize)

		for c := 0; c < outSize; c++ {
			colOrigin := g.Origin(c)
			clo, chi := g.Span(c)

			var acc T
			for kr := rlo; kr < rhi; kr++ {
				srcRow := tensor.Row(src, rowOrigin+kr, g.InSize)
				wRow := tensor.Row(w, kr, k)
				for kc := clo; kc < chi; kc++ {
					acc += srcRow[colOrigin+kc] * wRow[kc]
				}
			}
			dstRow[c] += acc
		}
	}
}

// biasAt returns bias[i], or zero when the bias is absent.
func biasAt[T tensor.Numeric](bias []T, i int) T {
	if len(bias) == 0 {
		return 0
	}
	return bias[i]
}
