package tensor

// Channel returns the contiguous plane of channel c in a channel-major buffer
// whose planes hold planeSize elements each.
//
// Pre-slicing the plane lets inner loops index with a single bounds check.
func Channel[T Numeric](buf []T, c, planeSize int) []T {
	start := c * planeSize
	return buf[start : start+planeSize : start+planeSize]
}

// Row returns row r of a row-major plane with the given width.
func Row[T Numeric](plane []T, r, width int) []T {
	start := r * width
	return plane[start : start+width : start+width]
}

// Fill sets every element of buf to v.
func Fill[T Numeric](buf []T, v T) {
	for i := range buf {
		buf[i] = v
	}
}
