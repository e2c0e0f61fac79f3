package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// MaxPool2D stores the maximum of every in-bounds window element.
//
// The running maximum starts at the lowest finite value of T, so a window
// made only of negative values still yields its true maximum. Padding cells
// never take part in the comparison.
//
// Example (4x4 input, 2x2 kernel, stride 2):
//
//	1  2  3  4
//	5  6  7  8    ->   6  8
//	9  10 11 12        14 16
//	13 14 15 16
func MaxPool2D[T tensor.Numeric](out, in []T, p Pool2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("maxpool2d", append([]any{"dtype", tensor.DataTypeOf[T]()}, p.attrs()...)...)
	if err := p.check("maxpool2d", o, len(out), len(in)); err != nil {
		return err
	}

	poolReduce(out, in, p, o.Parallel, windowMax[T])
	return nil
}

func windowMax[T tensor.Numeric](src []T, g window.Geometry, r, c int) T {
	rowOrigin, colOrigin := g.Origin(r), g.Origin(c)
	rlo, rhi := g.Span(r)
	clo, chi := g.Span(c)

	best := tensor.Lowest[T]()
	for kr := rlo; kr < rhi; kr++ {
		row := tensor.Row(src, rowOrigin+kr, g.InSize)
		for kc := clo; kc < chi; kc++ {
			if v := row[colOrigin+kc]; v > best {
				best = v
			}
		}
	}
	return best
}
