package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the logical dimensions of a buffer.
// Kernels never store a shape alongside the data; it is supplied per call.
type Shape []int

// NumElements returns the total number of elements described by the shape.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// DimError reports the dimensions of a shape that are not positive.
type DimError struct {
	Shape Shape
	Dims  []int // indices of the offending dimensions
}

// Error implements the error interface.
func (e *DimError) Error() string {
	i := e.Dims[0]
	if len(e.Dims) == 1 {
		return fmt.Sprintf("invalid dimension at index %d of %v: %d (must be > 0)", i, e.Shape, e.Shape[i])
	}
	return fmt.Sprintf("invalid dimensions at indices %v of %v (must be > 0)", e.Dims, e.Shape)
}

// Validate checks if the shape is valid (all dimensions > 0).
// The error is a *DimError listing every offending dimension.
func (s Shape) Validate() error {
	var bad []int
	for i, dim := range s {
		if dim <= 0 {
			bad = append(bad, i)
		}
	}
	if bad == nil {
		return nil
	}
	return &DimError{Shape: s, Dims: bad}
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// String formats the shape as [d0 x d1 x ...].
func (s Shape) String() string {
	out := "["
	for i, dim := range s {
		if i > 0 {
			out += " x "
		}
		out += fmt.Sprint(dim)
	}
	return out + "]"
}

// CHW returns the shape of a square channel-major tensor [channels, size, size].
func CHW(channels, size int) Shape {
	return Shape{channels, size, size}
}

// OIHW returns the shape of a square convolution kernel
// [outer, inner, kernelSize, kernelSize].
func OIHW(outer, inner, kernelSize int) Shape {
	return Shape{outer, inner, kernelSize, kernelSize}
}
