// Package window implements the padded, strided sliding-window index
// arithmetic shared by convolution, deconvolution and pooling.
//
// Padding is virtual: no zero-padded buffer is ever materialized. A kernel
// position whose mapped input coordinate falls outside [0, InSize) is a
// padding position; it contributes zero and must never be dereferenced.
//
// For an output coordinate o and kernel offset k along one axis:
//
//	in = o*Stride + k - Padding
//
// Square windows over square planes are assumed, so the same Geometry
// describes both the row and the column axis.
package window

import "iter"

// Geometry describes a gather-form window: every output coordinate reads a
// KernelSize x KernelSize neighbourhood of the input.
type Geometry struct {
	InSize     int // input plane edge length
	KernelSize int // kernel edge length
	Stride     int // step between consecutive window placements
	Padding    int // virtual zero border on each side
}

// Origin returns the input coordinate of kernel offset 0 for output coordinate out.
// The result is negative when the window starts inside the leading padding.
func (g Geometry) Origin(out int) int {
	return out*g.Stride - g.Padding
}

// Span returns the half-open range [lo, hi) of kernel offsets whose mapped
// input coordinate lies inside the input for output coordinate out.
// Offsets outside the span are padding positions. lo == hi means the whole
// window row (or column) is padding.
func (g Geometry) Span(out int) (lo, hi int) {
	origin := g.Origin(out)
	lo = max(0, -origin)
	hi = min(g.KernelSize, g.InSize-origin)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// InBounds reports whether coord is a real (non-padding) input coordinate.
func (g Geometry) InBounds(coord int) bool {
	return coord >= 0 && coord < g.InSize
}

// IsPadding reports whether the input coordinate pair lies in the padding border.
func (g Geometry) IsPadding(rowIn, colIn int) bool {
	return !g.InBounds(rowIn) || !g.InBounds(colIn)
}

// Tap is one kernel position of a window placement.
type Tap struct {
	KR, KC       int  // kernel offsets
	RowIn, ColIn int  // mapped input coordinates (may be out of range)
	Padding      bool // true when the position lies in the padding border
}

// Taps yields every kernel position of the window at (rowOut, colOut) in
// row-major kernel order, marking padding positions.
func (g Geometry) Taps(rowOut, colOut int) iter.Seq[Tap] {
	return func(yield func(Tap) bool) {
		rowOrigin := g.Origin(rowOut)
		colOrigin := g.Origin(colOut)
		for kr := 0; kr < g.KernelSize; kr++ {
			for kc := 0; kc < g.KernelSize; kc++ {
				t := Tap{
					KR:    kr,
					KC:    kc,
					RowIn: rowOrigin + kr,
					ColIn: colOrigin + kc,
				}
				t.Padding = g.IsPadding(t.RowIn, t.ColIn)
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Valid returns the number of non-padding taps of the window at (rowOut, colOut).
func (g Geometry) Valid(rowOut, colOut int) int {
	rlo, rhi := g.Span(rowOut)
	clo, chi := g.Span(colOut)
	return (rhi - rlo) * (chi - clo)
}

// Scatter describes the transposed (deconvolution) form: every input
// coordinate writes a KernelSize x KernelSize neighbourhood of the output.
//
//	out = in*Stride + k - Padding
type Scatter struct {
	OutSize    int
	KernelSize int
	Stride     int
	Padding    int
}

// Target returns the output coordinate of kernel offset 0 for input coordinate in.
func (s Scatter) Target(in int) int {
	return in*s.Stride - s.Padding
}

// Span returns the half-open range [lo, hi) of kernel offsets whose target
// output coordinate lies inside the output for input coordinate in.
func (s Scatter) Span(in int) (lo, hi int) {
	target := s.Target(in)
	lo = max(0, -target)
	hi = min(s.KernelSize, s.OutSize-target)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
