// Package tensor defines the element types and the channel-major layout
// conventions shared by every kernel.
package tensor

import "math"

// Numeric is the constraint for kernel element types.
// Integer and floating-point buffers share one generic implementation and
// differ only in storage width and rounding.
type Numeric interface {
	int32 | int64 | float32 | float64
}

// DataType represents runtime type information for kernel buffers.
type DataType int

// Supported data types.
const (
	Int32 DataType = iota
	Int64
	Float32
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T Numeric]() DataType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		panic("unsupported type")
	}
}

// Lowest returns the most negative finite value representable by T.
// Max pooling starts every window from this sentinel.
func Lowest[T Numeric]() T {
	var v T
	switch p := any(&v).(type) {
	case *int32:
		*p = math.MinInt32
	case *int64:
		*p = math.MinInt64
	case *float32:
		*p = -math.MaxFloat32
	case *float64:
		*p = -math.MaxFloat64
	}
	return v
}
