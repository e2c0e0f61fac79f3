package cpu

import (
	"fmt"

	"github.com/born-ml/dlr/internal/tensor"
)

// Batch applies fn to each of n samples of a minibatch.
//
// Sample i reads in[i*inStride : (i+1)*inStride] and writes
// out[i*outStride : (i+1)*outStride]. The first error stops the loop and is
// returned wrapped with the sample index.
//
//	err := cpu.Batch(n, 3*32*32, 8*32*32, out, in, func(o, x []float32) error {
//		return cpu.Conv2D(o, x, kernel, bias, p)
//	})
func Batch[T tensor.Numeric](n, inStride, outStride int, out, in []T, fn func(out, in []T) error) error {
	if n < 0 || inStride < 0 || outStride < 0 {
		return fmt.Errorf("batch: negative size (n=%d in_stride=%d out_stride=%d)", n, inStride, outStride)
	}
	if len(in) < n*inStride || len(out) < n*outStride {
		return fmt.Errorf("batch: buffers too short for %d samples (in=%d out=%d)", n, len(in), len(out))
	}

	for i := 0; i < n; i++ {
		if err := fn(tensor.Row(out, i, outStride), tensor.Row(in, i, inStride)); err != nil {
			return fmt.Errorf("batch: sample %d: %w", i, err)
		}
	}
	return nil
}
