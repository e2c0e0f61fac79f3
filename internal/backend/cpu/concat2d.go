package cpu

import (
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/tensor"
)

// Concat2DParams describes the concatenation of two row-major matrices
// A [RowsA, ColsA] and B [RowsB, ColsB].
//
// Dim 0 stacks B below A and requires ColsA == ColsB.
// Dim 1 places B to the right of A and requires RowsA == RowsB.
type Concat2DParams struct {
	RowsA int
	ColsA int
	RowsB int
	ColsB int
	Dim   int
}

// OutShape returns the shape of the concatenated matrix.
func (p Concat2DParams) OutShape() tensor.Shape {
	if p.Dim == 0 {
		return tensor.Shape{p.RowsA + p.RowsB, p.ColsA}
	}
	return tensor.Shape{p.RowsA, p.ColsA + p.ColsB}
}

// Validate runs the rigor-mode checks against the given buffer lengths.
func (p Concat2DParams) Validate(outLen, aLen, bLen int) error {
	c := diag.NewChecker("concat2d")
	c.Require(p.Dim == 0 || p.Dim == 1, "dim 0 or 1", "dim=%d", p.Dim)
	c.Dims(tensor.Shape{p.RowsA, p.ColsA, p.RowsB, p.ColsB}, "in_rowsA", "in_colsA", "in_rowsB", "in_colsB")
	switch p.Dim {
	case 0:
		c.Require(p.ColsA == p.ColsB, "in_colsA == in_colsB", "%d != %d", p.ColsA, p.ColsB)
	case 1:
		c.Require(p.RowsA == p.RowsB, "in_rowsA == in_rowsB", "%d != %d", p.RowsA, p.RowsB)
	}
	c.Len("in_dataA", aLen, p.RowsA*p.ColsA)
	c.Len("in_dataB", bLen, p.RowsB*p.ColsB)
	c.Len("out_data", outLen, p.RowsA*p.ColsA+p.RowsB*p.ColsB)
	return c.Err()
}

// Concat2D copies A and then B into out along p.Dim.
//
// Example (A 2x2 ones, B 2x2 zeros):
//
//	dim 0: 4x2, rows 0-1 ones, rows 2-3 zeros
//	dim 1: 2x4, columns 0-1 ones, columns 2-3 zeros
func Concat2D[T tensor.Numeric](out, a, b []T, p Concat2DParams, opts ...diag.Option) error {
	o := diag.Apply(opts)
	o.Dump("concat2d", "dtype", tensor.DataTypeOf[T](), "out_size", p.RowsA*p.ColsA+p.RowsB*p.ColsB,
		"in_rowsA", p.RowsA, "in_colsA", p.ColsA, "in_rowsB", p.RowsB, "in_colsB", p.ColsB, "dim", p.Dim)
	if o.Rigor {
		if err := p.Validate(len(out), len(a), len(b)); err != nil {
			return err
		}
	}

	sizeA := p.RowsA * p.ColsA
	if p.Dim == 0 {
		copy(out[:sizeA], a[:sizeA])
		copy(out[sizeA:sizeA+p.RowsB*p.ColsB], b)
		return nil
	}

	width := p.ColsA + p.ColsB
	for r := 0; r < p.RowsA; r++ {
		row := tensor.Row(out, r, width)
		copy(row[:p.ColsA], tensor.Row(a, r, p.ColsA))
		copy(row[p.ColsA:], tensor.Row(b, r, p.ColsB))
	}
	return nil
}
