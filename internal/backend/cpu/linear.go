package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
)

// LinearParams describes a fully-connected layer.
//
// Buffers:
//
//	out    [NDim, OutSize]
//	in     [NDim, InSize]
//	weight [OutSize, InSize]
//	bias   [OutSize] or empty
//
// NDim is the number of independent input vectors; Linear always uses 1.
type LinearParams struct {
	InSize  int
	OutSize int
	NDim    int
	Post    PostActivation // fused activation applied to the biased sum
}

func (p LinearParams) vectors() int {
	return max(p.NDim, 1)
}

// Validate runs the rigor-mode checks against the given buffer lengths.
func (p LinearParams) Validate(op string, outLen, inLen, weightLen, biasLen int) error {
	c := diag.NewChecker(op)
	c.Positive("in_size", p.InSize)
	c.Positive("out_size", p.OutSize)
	if op == "linear_nd" {
		c.Positive("ndim", p.NDim)
	}
	c.Require(p.Post.fusable(), "post activation none, relu or leaky_relu", "post=%s", p.Post)
	c.OptionalLen("bias", biasLen, p.OutSize)
	c.Len("out_data", outLen, p.vectors()*p.OutSize)
	c.Len("in_data", inLen, p.vectors()*p.InSize)
	c.Len("weight", weightLen, tensor.Shape{p.OutSize, p.InSize}.NumElements())
	return c.Err()
}

func (p LinearParams) attrs(biasLen int) []any {
	return []any{
		"in_size", p.InSize,
		"out_size", p.OutSize,
		"ndim", p.NDim,
		"bias_size", biasLen,
		"post", p.Post.String(),
	}
}

// Linear computes out[o] = Post(sum_i in[i]*weight[o,i] + bias[o]) for a
// single input vector. NDim is ignored.
//
// Example (identity weight, zero bias):
//
//	[1 2 3] x I = [1 2 3]
func Linear[T tensor.Numeric](out, in, weight, bias []T, p LinearParams, opts ...diag.Option) error {
	p.NDim = 1
	o := diag.Apply(opts)
	o.Dump("linear", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs(len(bias))...)...)
	if o.Rigor {
		if err := p.Validate("linear", len(out), len(in), len(weight), len(bias)); err != nil {
			return err
		}
	}

	x := tensor.Row(in, 0, p.InSize)
	parallel.For(p.OutSize, func(j int) {
		out[j] = linearUnit(x, tensor.Row(weight, j, p.InSize), bias, j, p.Post)
	}, o.Parallel)
	return nil
}

// LinearNd applies the same layer to NDim input vectors independently.
// Vector v reads in[v*InSize:] and writes out[v*OutSize:].
func LinearNd[T tensor.Numeric](out, in, weight, bias []T, p LinearParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("linear_nd", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs(len(bias))...)...)
	if o.Rigor {
		if err := p.Validate("linear_nd", len(out), len(in), len(weight), len(bias)); err != nil {
			return err
		}
	}

	parallel.For(p.NDim, func(v int) {
		x := tensor.Row(in, v, p.InSize)
		z := tensor.Row(out, v, p.OutSize)
		for j := range z {
			z[j] = linearUnit(x, tensor.Row(weight, j, p.InSize), bias, j, p.Post)
		}
	}, o.Parallel)
	return nil
}

// linearUnit returns the activated output j for input x and weight row w.
func linearUnit[T tensor.Numeric](x, w, bias []T, j int, post PostActivation) T {
	var sum T
	for i, v := range x {
		sum += v * w[i]
	}
	return Apply(post, sum+biasAt(bias, j))
}
