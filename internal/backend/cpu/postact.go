package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/tensor"
)

// DefaultNegativeSlope is the LeakyReLU slope used when none is given.
const DefaultNegativeSlope float32 = 0.01

// DefaultNormNegativeSlope is the slope of the leaky activation fused into
// 2D/3D batch normalization.
const DefaultNormNegativeSlope float32 = 0.1

// ActivationKind selects an element-wise activation.
type ActivationKind uint8

// Supported activations.
const (
	ActivationNone ActivationKind = iota
	ActivationReLU
	ActivationLeakyReLU
	ActivationSigmoid
	ActivationTanh
)

// String returns the activation name.
func (k ActivationKind) String() string {
	switch k {
	case ActivationNone:
		return "none"
	case ActivationReLU:
		return "relu"
	case ActivationLeakyReLU:
		return "leaky_relu"
	case ActivationSigmoid:
		return "sigmoid"
	case ActivationTanh:
		return "tanh"
	default:
		return fmt.Sprintf("activation(%d)", uint8(k))
	}
}

// PostActivation is an activation fused into a layer and applied to every
// output element right before it is stored. The zero value is no activation.
type PostActivation struct {
	Kind  ActivationKind
	Slope float32 // negative slope, LeakyReLU only
}

// NoActivation stores layer outputs unchanged.
func NoActivation() PostActivation {
	return PostActivation{}
}

// ReLUActivation fuses max(x, 0).
func ReLUActivation() PostActivation {
	return PostActivation{Kind: ActivationReLU}
}

// LeakyReLUActivation fuses x >= 0 ? x : x*slope.
func LeakyReLUActivation(slope float32) PostActivation {
	return PostActivation{Kind: ActivationLeakyReLU, Slope: slope}
}

// String returns a compact description, e.g. "leaky_relu(0.1)".
func (a PostActivation) String() string {
	if a.Kind == ActivationLeakyReLU {
		return fmt.Sprintf("%s(%g)", a.Kind, a.Slope)
	}
	return a.Kind.String()
}

// IsNone reports whether the activation leaves values unchanged.
func (a PostActivation) IsNone() bool {
	return a.Kind == ActivationNone
}

// ValidateActivation reports an unknown activation kind as a precondition
// violation of op. Both backends run it under rigor mode.
func ValidateActivation(op string, a PostActivation) error {
	if a.Kind <= ActivationTanh {
		return nil
	}
	return &diag.PreconditionError{Op: op, Check: "known activation", Detail: a.String()}
}

// truncates reports whether applying a to an integer buffer collapses the
// result to a few values.
func (a PostActivation) truncates() bool {
	return a.Kind == ActivationSigmoid || a.Kind == ActivationTanh
}

// fusable reports whether the activation may be fused into a layer.
// Only the piecewise-linear activations are fused.
func (a PostActivation) fusable() bool {
	return a.Kind == ActivationNone || a.Kind == ActivationReLU || a.Kind == ActivationLeakyReLU
}

// Apply returns the activation of x.
func Apply[T tensor.Numeric](a PostActivation, x T) T {
	switch a.Kind {
	case ActivationReLU:
		return relu(x)
	case ActivationLeakyReLU:
		return leaky(x, a.Slope)
	case ActivationSigmoid:
		return sigmoid(x)
	case ActivationTanh:
		return tanh(x)
	default:
		return x
	}
}

func relu[T tensor.Numeric](x T) T {
	if x <= 0 {
		return 0
	}
	return x
}

// leaky scales negative values by slope. The product is formed in float64
// and narrowed, so integer buffers truncate toward zero.
func leaky[T tensor.Numeric](x T, slope float32) T {
	if x < 0 {
		return T(float64(x) * float64(slope))
	}
	return x
}

// sigmoid is evaluated in double precision regardless of T.
func sigmoid[T tensor.Numeric](x T) T {
	return T(1.0 / (1.0 + math.Exp(-float64(x))))
}

// tanh is evaluated in double precision regardless of T.
func tanh[T tensor.Numeric](x T) T {
	return T(math.Tanh(float64(x)))
}
