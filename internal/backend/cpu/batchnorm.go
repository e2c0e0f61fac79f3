package cpu

import (
	"math"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
)

// DefaultEpsilon is the variance regularizer used when NormParams.Epsilon is
// zero and NormParams.ExactEpsilon is unset.
const DefaultEpsilon float32 = 1e-5

// NormParams describes inference-time batch normalization.
//
// Buffers:
//
//	out, in         [Channels, Size]        Norm1DBatch, Norm2DBatch
//	out, in         [Channels, Size, Size]  Norm3DBatch
//	mean, variance  [Channels]
//	scale, bias     [Channels] or empty (scale defaults to 1, bias to 0)
type NormParams struct {
	Channels int
	Size     int
	Epsilon  float32        // zero selects DefaultEpsilon unless ExactEpsilon is set
	Post     PostActivation // fused activation, Norm2DBatch and Norm3DBatch only

	// ExactEpsilon uses Epsilon as given, including zero. A zero variance
	// then divides by zero.
	ExactEpsilon bool
}

func (p NormParams) epsilon() float64 {
	if p.Epsilon == 0 && !p.ExactEpsilon {
		return float64(DefaultEpsilon)
	}
	return float64(p.Epsilon)
}

// Validate runs the rigor-mode checks against the given buffer lengths.
// planeSize is the number of elements per channel.
func (p NormParams) Validate(op string, planeSize, outLen, inLen, meanLen, varLen, scaleLen, biasLen int) error {
	c := diag.NewChecker(op)
	c.Dims(tensor.Shape{p.Channels, p.Size}, "in_channel", "in_size")
	c.Require(p.Epsilon >= 0, "epsilon >= 0", "epsilon=%g", p.Epsilon)
	if op == "norm1d_batch" {
		c.Require(p.Post.IsNone(), "no post activation", "post=%s", p.Post)
	} else {
		c.Require(p.Post.fusable(), "post activation none, relu or leaky_relu", "post=%s", p.Post)
	}
	c.OptionalLen("scale", scaleLen, p.Channels)
	c.OptionalLen("bias", biasLen, p.Channels)
	c.Len("running_mean", meanLen, p.Channels)
	c.Len("running_var", varLen, p.Channels)
	c.Len("out_data", outLen, p.Channels*planeSize)
	c.Len("in_data", inLen, p.Channels*planeSize)
	return c.Err()
}

// Norm1DBatch normalizes [Channels, Size] data per channel:
//
//	out = (in - mean) / sqrt(variance + epsilon) * scale + bias
//
// The arithmetic after the subtraction is carried out in float64.
func Norm1DBatch[T tensor.Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...diag.Option) error {
	p.Post = NoActivation()
	return normBatch("norm1d_batch", p.Size, out, in, mean, variance, scale, bias, p, opts)
}

// Norm2DBatch normalizes [Channels, Size] data per channel and applies
// p.Post. LeakyReLUActivation(DefaultNormNegativeSlope) is the usual fused form.
func Norm2DBatch[T tensor.Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...diag.Option) error {
	return normBatch("norm2d_batch", p.Size, out, in, mean, variance, scale, bias, p, opts)
}

// Norm3DBatch normalizes [Channels, Size, Size] data per channel and applies p.Post.
func Norm3DBatch[T tensor.Numeric](out, in, mean, variance, scale, bias []T, p NormParams, opts ...diag.Option) error {
	return normBatch("norm3d_batch", p.Size*p.Size, out, in, mean, variance, scale, bias, p, opts)
}

func normBatch[T tensor.Numeric](op string, plane int, out, in, mean, variance, scale, bias []T, p NormParams, opts []diag.Option) error {
	o := diag.Apply(opts)
	o.Dump(op, "dtype", tensor.DataTypeOf[T](), "in_channel", p.Channels, "in_size", p.Size,
		"scale_size", len(scale), "bias_size", len(bias), "epsilon", p.epsilon(), "post", p.Post.String())
	if o.Rigor {
		err := p.Validate(op, plane, len(out), len(in), len(mean), len(variance), len(scale), len(bias))
		if err != nil {
			return err
		}
	}

	eps := p.epsilon()
	parallel.For(p.Channels, func(ch int) {
		m := mean[ch]
		den := math.Sqrt(float64(variance[ch]) + eps)
		s := 1.0
		if len(scale) != 0 {
			s = float64(scale[ch])
		}
		b := float64(biasAt(bias, ch))

		dst := tensor.Channel(out, ch, plane)
		for i, x := range tensor.Channel(in, ch, plane) {
			dst[i] = Apply(p.Post, T(float64(x-m)/den*s+b))
		}
	}, o.Parallel)
	return nil
}
