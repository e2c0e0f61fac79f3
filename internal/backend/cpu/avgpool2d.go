package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// AvgPool2D stores the mean of every window.
//
// The divisor is always KernelSize*KernelSize: padding cells count as zeros
// rather than being excluded. A 2x2 window with one in-bounds value v
// therefore yields v/4. Integer types use truncating division.
func AvgPool2D[T tensor.Numeric](out, in []T, p Pool2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("avgpool2d", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs()...)...)
	if err := p.check("avgpool2d", o, len(out), len(in)); err != nil {
		return err
	}

	area := T(p.KernelSize * p.KernelSize)
	poolReduce(out, in, p, o.Parallel, func(src []T, g window.Geometry, r, c int) T {
		return windowSum(src, g, r, c) / area
	})
	return nil
}

func windowSum[T tensor.Numeric](src []T, g window.Geometry, r, c int) T {
	rowOrigin, colOrigin := g.Origin(r), g.Origin(c)
	rlo, rhi := g.Span(r)
	clo, chi := g.Span(c)

	var sum T
	for kr := rlo; kr < rhi; kr++ {
		row := tensor.Row(src, rowOrigin+kr, g.InSize)
		for kc := clo; kc < chi; kc++ {
			sum += row[colOrigin+kc]
		}
	}
	return sum
}
