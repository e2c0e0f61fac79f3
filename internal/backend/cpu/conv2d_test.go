package cpu

import (
	"testing"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConv2D_BasicForward tests a single-channel convolution without padding.
func TestConv2D_BasicForward(t *testing.T) {
	// Input [1, 3, 3]:
	// 1 2 3
	// 4 5 6
	// 7 8 9
	in := seq[float32](9, 1)

	// Kernel [1, 1, 2, 2]:
	// 1 0
	// 0 1
	kernel := []float32{1, 0, 0, 1}

	p := Conv2DParams{OutSize: 2, InSize: 3, KernelSize: 2, InChannels: 1, OutChannels: 1, Stride: 1}
	out := make([]float32, 4)
	require.NoError(t, Conv2D(out, in, kernel, nil, p))

	// Diagonal sums: 1+5, 2+6, 4+8, 5+9.
	expected := []float32{6, 8, 12, 14}
	for i, exp := range expected {
		if out[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, out[i])
		}
	}
}

// TestConv2D_WithPadding tests that padding cells contribute zero.
func TestConv2D_WithPadding(t *testing.T) {
	in := filled[float32](9, 1)
	kernel := filled[float32](9, 1)

	p := Conv2DParams{OutSize: 3, InSize: 3, KernelSize: 3, InChannels: 1, OutChannels: 1, Stride: 1, Padding: 1}
	out := make([]float32, 9)
	require.NoError(t, Conv2D(out, in, kernel, nil, p, diag.WithRigor()))

	// Corners see 4 cells, edges 6, center 9.
	expected := []float32{
		4, 6, 4,
		6, 9, 6,
		4, 6, 4,
	}
	assert.Equal(t, expected, out)
}

// TestConv2D_Stride tests a strided window.
func TestConv2D_Stride(t *testing.T) {
	// Input [1, 5, 5] = 1..25, kernel picks the window center.
	in := seq[float32](25, 1)
	kernel := []float32{
		0, 0, 0,
		0, 1, 0,
		0, 0, 0,
	}

	p := Conv2DParams{OutSize: 2, InSize: 5, KernelSize: 3, InChannels: 1, OutChannels: 1, Stride: 2}
	out := make([]float32, 4)
	require.NoError(t, Conv2D(out, in, kernel, nil, p, diag.WithRigor()))

	// Window centers are (1,1), (1,3), (3,1), (3,3).
	assert.Equal(t, []float32{7, 9, 17, 19}, out)
}

// TestConv2D_ZeroKernelYieldsBias tests that a zero kernel leaves only the bias.
func TestConv2D_ZeroKernelYieldsBias(t *testing.T) {
	p := Conv2DParams{OutSize: 4, InSize: 4, KernelSize: 3, InChannels: 3, OutChannels: 2, Stride: 1, Padding: 1}
	in := randFloat32(1, 3*4*4)
	kernel := make([]float32, 2*3*3*3)

	t.Run("bias", func(t *testing.T) {
		out := randFloat32(2, 2*4*4)
		require.NoError(t, Conv2D(out, in, kernel, []float32{1.5, -2}, p, diag.WithRigor()))

		for i, v := range out {
			want := float32(1.5)
			if i >= 16 {
				want = -2
			}
			assert.Equal(t, want, v, "index %d", i)
		}
	})

	t.Run("no bias", func(t *testing.T) {
		out := randFloat32(3, 2*4*4)
		require.NoError(t, Conv2D(out, in, kernel, nil, p, diag.WithRigor()))
		assert.Equal(t, make([]float32, 2*4*4), out)
	})
}

// TestConv2D_AccumulatesInputChannels tests that input channels sum into one output.
func TestConv2D_AccumulatesInputChannels(t *testing.T) {
	// Two 2x2 input channels, 1x1 kernel weights 2 and 3, bias 10.
	in := []int32{
		1, 2, 3, 4,
		10, 20, 30, 40,
	}
	kernel := []int32{2, 3}

	p := Conv2DParams{OutSize: 2, InSize: 2, KernelSize: 1, InChannels: 2, OutChannels: 1, Stride: 1}
	out := make([]int32, 4)
	require.NoError(t, Conv2D(out, in, kernel, []int32{10}, p, diag.WithRigor()))

	want := []int32{42, 74, 106, 138}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Conv2D mismatch (-want +got):\n%s", diff)
	}
}

// TestConv2D_NeverReadsOutsideInput tests that padded windows stay inside the input.
func TestConv2D_NeverReadsOutsideInput(t *testing.T) {
	for _, tc := range []struct {
		name       string
		in, k, s   int
		padding    int
		inChannels int
	}{
		{"pad1", 5, 3, 1, 1, 1},
		{"pad2 stride2", 7, 5, 2, 2, 2},
		{"stride3", 8, 3, 3, 1, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Conv2DParams{
				InSize: tc.in, KernelSize: tc.k, Stride: tc.s, Padding: tc.padding,
				InChannels: tc.inChannels, OutChannels: 1,
			}
			p.OutSize = p.ExpectedOutSize()

			in := clipped(randFloat32(4, tc.inChannels*tc.in*tc.in))
			kernel := randFloat32(5, tc.inChannels*tc.k*tc.k)
			out := make([]float32, p.OutSize*p.OutSize)

			require.NotPanics(t, func() {
				require.NoError(t, Conv2D(out, in, kernel, nil, p, diag.WithRigor()))
			})
		})
	}
}

// TestConv2D_Rigor tests that violations are reported and nothing is written.
func TestConv2D_Rigor(t *testing.T) {
	good := Conv2DParams{OutSize: 3, InSize: 3, KernelSize: 3, InChannels: 1, OutChannels: 1, Stride: 1, Padding: 1}

	tests := []struct {
		name  string
		p     func(p Conv2DParams) Conv2DParams
		bias  []float32
		check string
	}{
		{"even kernel", func(p Conv2DParams) Conv2DParams { p.KernelSize = 2; return p }, nil, "kernel_size odd"},
		{"large padding", func(p Conv2DParams) Conv2DParams { p.Padding = 2; p.OutSize = 5; return p }, nil, "padding <= kernel_size/2"},
		{"out size", func(p Conv2DParams) Conv2DParams { p.OutSize = 2; return p }, nil, "out_size =="},
		{"bias length", func(p Conv2DParams) Conv2DParams { return p }, []float32{1, 2}, "bias length 0 or 1"},
		{"no channels", func(p Conv2DParams) Conv2DParams { p.InChannels = 0; return p }, nil, "in_channel > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filled[float32](9, 7)
			in := filled[float32](9, 1)
			kernel := filled[float32](9, 1)

			err := Conv2D(out, in, kernel, tt.bias, tt.p(good), diag.WithRigor())
			require.Error(t, err)
			assert.ErrorIs(t, err, diag.ErrPrecondition)
			assert.Contains(t, err.Error(), tt.check)
			assert.Equal(t, filled[float32](9, 7), out, "output must be untouched")
		})
	}
}

// TestConv2D_ParallelMatchesSequential tests bit-identical results across workers.
func TestConv2D_ParallelMatchesSequential(t *testing.T) {
	p := Conv2DParams{OutSize: 8, InSize: 16, KernelSize: 3, InChannels: 4, OutChannels: 6, Stride: 2, Padding: 1}
	in := randFloat32(10, 4*16*16)
	kernel := randFloat32(11, 6*4*3*3)
	bias := randFloat32(12, 6)

	seqOut := make([]float32, 6*8*8)
	parOut := make([]float32, 6*8*8)
	require.NoError(t, Conv2D(seqOut, in, kernel, bias, p, diag.WithRigor()))
	require.NoError(t, Conv2D(parOut, in, kernel, bias, p, diag.WithRigor(), parallelOpt()))

	assert.Equal(t, seqOut, parOut)
}

// TestConv2D_Verbose tests the parameter dump.
func TestConv2D_Verbose(t *testing.T) {
	rec := &recordLogger{}
	p := Conv2DParams{OutSize: 1, InSize: 1, KernelSize: 1, InChannels: 1, OutChannels: 1, Stride: 1}

	require.NoError(t, Conv2D([]float64{0}, []float64{2}, []float64{3}, nil, p, diag.WithVerbose(), diag.WithLogger(rec)))

	require.Len(t, rec.infos, 1)
	assert.Equal(t, "conv2d", rec.infos[0])
	assert.Contains(t, rec.args[0], tensor.Float64)
}

func BenchmarkConv2D_32x32(b *testing.B) {
	p := Conv2DParams{OutSize: 32, InSize: 32, KernelSize: 3, InChannels: 16, OutChannels: 16, Stride: 1, Padding: 1}
	in := randFloat32(1, 16*32*32)
	kernel := randFloat32(2, 16*16*3*3)
	out := make([]float32, 16*32*32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Conv2D(out, in, kernel, nil, p)
	}
}
