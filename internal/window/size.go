package window

// ConvOutSize returns the output edge length of a gather-form window:
//
//	floor((in - k + 2p) / s) + 1
func ConvOutSize(in, kernel, stride, padding int) int {
	return floorDiv(in-kernel+2*padding, stride) + 1
}

// DeconvOutSize returns the output edge length of a transposed convolution:
//
//	(in - 1)*s - 2p + (k - 1) + 1
func DeconvOutSize(in, kernel, stride, padding int) int {
	return (in-1)*stride - 2*padding + (kernel - 1) + 1
}

// PoolOutSize returns the output edge length of a pooling window.
//
// With ceil false it is ConvOutSize. With ceil true the division rounds up,
// and the last window is dropped when it would start inside the trailing
// padding, so every window overlaps the input or the leading padding.
func PoolOutSize(in, kernel, stride, padding int, ceil bool) int {
	if !ceil {
		return ConvOutSize(in, kernel, stride, padding)
	}
	out := ceilDiv(in-kernel+2*padding, stride) + 1
	if (out-1)*stride >= in+padding {
		out--
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
