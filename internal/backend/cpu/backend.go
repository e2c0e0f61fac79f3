// Package cpu implements the layer kernels on the CPU.
//
// Every kernel is one generic routine over tensor.Numeric. Buffers are
// channel-major and caller-allocated; shapes travel in a params struct.
// Kernels trust their arguments unless diag.WithRigor is given.
package cpu

import "slices"

// Kernel describes one kernel for listings and self-checks.
type Kernel struct {
	Name   string   // kernel name as used in diagnostics
	Family string   // window, elementwise, dense, norm or structural
	Fused  bool     // accepts a fused PostActivation
	Checks []string // conditions verified under rigor mode
}

var kernels = []Kernel{
	{Name: "conv2d", Family: "window", Checks: []string{
		"in_channel > 0", "out_channel > 0", "kernel_size odd", "stride > 0",
		"padding <= kernel_size/2", "out_size == (in_size-kernel_size+2*padding)/stride+1",
		"bias length 0 or out_channel",
	}},
	{Name: "deconv2d", Family: "window", Checks: []string{
		"in_channel > 0", "out_channel > 0", "stride > 0",
		"out_size == (in_size-1)*stride-2*padding+kernel_size", "bias length 0 or out_channel",
	}},
	{Name: "maxpool2d", Family: "window", Fused: true, Checks: []string{
		"channel > 0", "kernel_size parity", "stride > 0", "padding <= kernel_size/2",
		"out_size matches (warning)",
	}},
	{Name: "avgpool2d", Family: "window", Fused: true, Checks: []string{
		"channel > 0", "kernel_size parity", "stride > 0", "padding <= kernel_size/2",
		"out_size matches (warning)",
	}},
	{Name: "relu", Family: "elementwise", Checks: []string{"channel > 0", "size > 0"}},
	{Name: "leaky_relu", Family: "elementwise", Checks: []string{"channel > 0", "size > 0"}},
	{Name: "sigmoid", Family: "elementwise", Checks: []string{"channel > 0", "size > 0"}},
	{Name: "tanh", Family: "elementwise", Checks: []string{"channel > 0", "size > 0"}},
	{Name: "linear", Family: "dense", Fused: true, Checks: []string{
		"in_size > 0", "out_size > 0", "bias length 0 or out_size",
	}},
	{Name: "linear_nd", Family: "dense", Fused: true, Checks: []string{
		"in_size > 0", "out_size > 0", "ndim > 0", "bias length 0 or out_size",
	}},
	{Name: "norm1d_batch", Family: "norm", Checks: []string{
		"in_channel > 0", "in_size > 0", "scale length 0 or in_channel", "bias length 0 or in_channel",
	}},
	{Name: "norm2d_batch", Family: "norm", Fused: true, Checks: []string{
		"in_channel > 0", "in_size > 0", "scale length 0 or in_channel", "bias length 0 or in_channel",
	}},
	{Name: "norm3d_batch", Family: "norm", Fused: true, Checks: []string{
		"in_channel > 0", "in_size > 0", "scale length 0 or in_channel", "bias length 0 or in_channel",
	}},
	{Name: "concat2d", Family: "structural", Checks: []string{
		"dim 0 or 1", "positive dimensions", "matching non-concatenated axis",
	}},
}

// Kernels returns the kernels of this package in a fixed order.
func Kernels() []Kernel {
	out := slices.Clone(kernels)
	for i := range out {
		out[i].Checks = slices.Clone(out[i].Checks)
	}
	return out
}
