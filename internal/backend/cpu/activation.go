package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
)

// ActivationParams describes the buffer shape of an element-wise activation:
// [Channels, Size], or [Channels, Size, Size] when Square is set.
type ActivationParams struct {
	Channels int
	Size     int
	Square   bool
}

// PlaneSize returns the number of elements per channel.
func (p ActivationParams) PlaneSize() int {
	if p.Square {
		return p.Size * p.Size
	}
	return p.Size
}

// NumElements returns the number of elements of the whole buffer.
func (p ActivationParams) NumElements() int {
	return p.Channels * p.PlaneSize()
}

// Validate runs the rigor-mode checks against the given buffer lengths.
func (p ActivationParams) Validate(op string, outLen, inLen int) error {
	c := diag.NewChecker(op)
	c.Dims(tensor.Shape{p.Channels, p.Size}, "channel", "size")
	c.Len("out_data", outLen, p.NumElements())
	c.Len("in_data", inLen, p.NumElements())
	return c.Err()
}

// ReLU computes out = max(in, 0).
func ReLU[T tensor.Numeric](out, in []T, p ActivationParams, opts ...diag.Option) error {
	return Activate(out, in, p, ReLUActivation(), opts...)
}

// LeakyReLU computes out = in >= 0 ? in : in*slope.
// Use DefaultNegativeSlope for the conventional 0.01.
func LeakyReLU[T tensor.Numeric](out, in []T, p ActivationParams, slope float32, opts ...diag.Option) error {
	return Activate(out, in, p, LeakyReLUActivation(slope), opts...)
}

// Sigmoid computes out = 1/(1+exp(-in)) in float64, narrowed to T.
func Sigmoid[T tensor.Numeric](out, in []T, p ActivationParams, opts ...diag.Option) error {
	return Activate(out, in, p, PostActivation{Kind: ActivationSigmoid}, opts...)
}

// Tanh computes out = tanh(in) in float64, narrowed to T.
func Tanh[T tensor.Numeric](out, in []T, p ActivationParams, opts ...diag.Option) error {
	return Activate(out, in, p, PostActivation{Kind: ActivationTanh}, opts...)
}

// Activate applies act to every element of in and stores the result in out.
// out and in may be the same slice.
func Activate[T tensor.Numeric](out, in []T, p ActivationParams, act PostActivation, opts ...diag.Option) error {
	o := diag.Apply(opts)
	op := act.Kind.String()
	o.Dump(op, "dtype", tensor.DataTypeOf[T](), "channel", p.Channels, "size", p.Size,
		"square", p.Square, "activation", act.String())
	if o.Rigor {
		if err := p.Validate(op, len(out), len(in)); err != nil {
			return err
		}
		if err := ValidateActivation(op, act); err != nil {
			return err
		}
		if dt := tensor.DataTypeOf[T](); !dt.IsFloat() && act.truncates() {
			o.Warn(op, "integer buffer truncates the result", "dtype", dt)
		}
	}

	plane := p.PlaneSize()
	parallel.For(p.Channels, func(ch int) {
		dst := tensor.Channel(out, ch, plane)
		src := tensor.Channel(in, ch, plane)
		for i, v := range src {
			dst[i] = Apply(act, v)
		}
	}, o.Parallel)
	return nil
}
