package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// Deconv2DParams describes a square transposed 2D convolution.
//
// Buffers:
//
//	out    [OutChannels, OutSize, OutSize]
//	in     [InChannels, InSize, InSize]
//	kernel [InChannels, OutChannels, KernelSize, KernelSize]
//	bias   [OutChannels] or empty
type Deconv2DParams struct {
	OutSize     int
	InSize      int
	KernelSize  int
	InChannels  int
	OutChannels int
	Stride      int
	Padding     int
}

// ExpectedOutSize returns (InSize-1)*Stride - 2*Padding + (KernelSize-1) + 1.
func (p Deconv2DParams) ExpectedOutSize() int {
	return window.DeconvOutSize(p.InSize, p.KernelSize, p.Stride, p.Padding)
}

// Validate runs the rigor-mode checks against the given buffer lengths.
func (p Deconv2DParams) Validate(outLen, inLen, kernelLen, biasLen int) error {
	c := diag.NewChecker("deconv2d")
	c.Dims(tensor.Shape{p.InChannels, p.OutChannels, p.InSize, p.OutSize, p.KernelSize},
		"in_channel", "out_channel", "in_size", "out_size", "kernel_size")
	c.Positive("stride", p.Stride)
	c.NonNegative("padding", p.Padding)
	c.Require(p.OutSize == p.ExpectedOutSize(), "out_size == (in_size-1)*stride-2*padding+kernel_size",
		"out_size=%d expected=%d", p.OutSize, p.ExpectedOutSize())
	c.OptionalLen("bias", biasLen, p.OutChannels)
	c.Len("out_data", outLen, tensor.CHW(p.OutChannels, p.OutSize).NumElements())
	c.Len("in_data", inLen, tensor.CHW(p.InChannels, p.InSize).NumElements())
	c.Len("kernel", kernelLen, tensor.OIHW(p.InChannels, p.OutChannels, p.KernelSize).NumElements())
	return c.Err()
}

func (p Deconv2DParams) attrs(biasLen int) []any {
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

func (p Deconv2DParams) scatter() window.Scatter {
	return window.Scatter{
		OutSize:    p.OutSize,
		KernelSize: p.KernelSize,
		Stride:     p.Stride,
		Padding:    p.Padding,
	}
}

// Deconv2D performs a square transposed convolution.
//
// Each output channel is filled with its bias, then every input element is
// scattered into a stride-spaced neighbourhood of the output:
//
//	out[f, r*s+kr-p, c*s+kc-p] += in[ch, r, c] * kernel[ch, f, kr, kc]
//
// Targets outside the output plane are skipped.
func Deconv2D[T tensor.Numeric](out, in, kernel, bias []T, p Deconv2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("deconv2d", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs(len(bias))...)...)
	if o.Rigor {
		if err := p.Validate(len(out), len(in), len(kernel), len(bias)); err != nil {
			return err
		}
	}

	s := p.scatter()
	inPlane := p.InSize * p.InSize
	outPlane := p.OutSize * p.OutSize
	kernelArea := p.KernelSize * p.KernelSize
	filterSize := p.OutChannels * kernelArea

	// Output channels own disjoint planes, so they can run concurrently.
	parallel.For(p.OutChannels, func(f int) {
		dst := tensor.Channel(out, f, outPlane)
		tensor.Fill(dst, biasAt(bias, f))

		for ch := 0; ch < p.InChannels; ch++ {
			w := tensor.Channel(tensor.Channel(kernel, ch, filterSize), f, kernelArea)
			deconv2dPlane(dst, tensor.Channel(in, ch, inPlane), w, s, p.InSize)
		}
	}, o.Parallel)

	return nil
}

// deconv2dPlane scatters one input plane through one kernel slice into dst.
func deconv2dPlane[T tensor.Numeric](dst, src, w []T, s window.Scatter, inSize int) {
	k := s.KernelSize
	for r := 0; r < inSize; r++ {
		rowTarget := s.Target(r)
		rlo, rhi := s.Span(r)
		srcRow := tensor.Row(src, r, inSize)

		for c := 0; c < inSize; c++ {
			colTarget := s.Target(c)
			clo, chi := s.Span(c)
			v := srcRow[c]

			for kr := rlo; kr < rhi; kr++ {
				dstRow := tensor.Row(dst, rowTarget+kr, s.OutSize)
				wRow := tensor.Row(w, kr, k)
				for kc := clo; kc < chi; kc++ {
					dstRow[colTarget+kc] += v * wRow[kc]
				}
			}
		}
	}
}
