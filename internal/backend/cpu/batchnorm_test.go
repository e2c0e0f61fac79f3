package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNorm1DBatch(t *testing.T) {
	// Two channels of three elements.
	in := []float64{
		1, 2, 3,
		10, 20, 30,
	}
	mean := []float64{2, 20}
	variance := []float64{4, 100}

	p := NormParams{Channels: 2, Size: 3, Epsilon: 1e-9}
	out := make([]float64, 6)
	require.NoError(t, Norm1DBatch(out, in, mean, variance, nil, nil, p, diag.WithRigor()))

	den0 := math.Sqrt(4 + float64(float32(1e-9)))
	den1 := math.Sqrt(100 + float64(float32(1e-9)))
	expected := []float64{-1 / den0, 0, 1 / den0, -10 / den1, 0, 10 / den1}
	assert.InDeltaSlice(t, expected, out, 1e-12)
}

func TestNorm1DBatch_ScaleBiasAndDefaultEpsilon(t *testing.T) {
	in := []float32{3}
	out := make([]float32, 1)

	p := NormParams{Channels: 1, Size: 1}
	require.NoError(t, Norm1DBatch(out, in, []float32{1}, []float32{1}, []float32{2}, []float32{0.5}, p, diag.WithRigor()))

	want := 2/math.Sqrt(1+float64(DefaultEpsilon))*2 + 0.5
	assert.InDelta(t, want, float64(out[0]), 1e-6)
}

func TestNorm1DBatch_ExactZeroEpsilon(t *testing.T) {
	in := []float64{2}
	mean := []float64{0}
	variance := []float64{4}
	out := make([]float64, 1)

	p := NormParams{Channels: 1, Size: 1, ExactEpsilon: true}
	require.NoError(t, Norm1DBatch(out, in, mean, variance, nil, nil, p, diag.WithRigor()))
	assert.Equal(t, 1.0, out[0])

	p.ExactEpsilon = false
	require.NoError(t, Norm1DBatch(out, in, mean, variance, nil, nil, p, diag.WithRigor()))
	assert.Less(t, out[0], 1.0, "zero Epsilon selects DefaultEpsilon")
}

func TestNorm2DBatch_FusedLeakyReLU(t *testing.T) {
	in := []float32{-2, 2}
	mean := []float32{0}
	variance := []float32{1}

	p := NormParams{Channels: 1, Size: 2, Post: LeakyReLUActivation(DefaultNormNegativeSlope)}
	out := make([]float32, 2)
	require.NoError(t, Norm2DBatch(out, in, mean, variance, nil, nil, p, diag.WithRigor()))

	scale := 1 / math.Sqrt(1+float64(DefaultEpsilon))
	assert.InDeltaSlice(t, []float32{float32(-2 * scale * 0.1), float32(2 * scale)}, out, 1e-6)
}

func TestNorm3DBatch_SquarePlanes(t *testing.T) {
	// Two channels of [2, 2]: every element of a channel sits at its mean.
	in := []float32{
		5, 5, 5, 5,
		-1, -1, -1, -1,
	}
	mean := []float32{5, -1}
	variance := []float32{1, 1}
	bias := []float32{0.25, -3}

	p := NormParams{Channels: 2, Size: 2, Post: ReLUActivation()}
	out := make([]float32, 8)
	require.NoError(t, Norm3DBatch(out, in, mean, variance, nil, bias, p, diag.WithRigor(), parallelOpt()))

	assert.Equal(t, []float32{0.25, 0.25, 0.25, 0.25, 0, 0, 0, 0}, out)
}

func TestNormBatch_Integer(t *testing.T) {
	in := []int32{10, 14, 6}
	out := make([]int32, 3)

	// (x - 10) / sqrt(4) with a negligible epsilon, truncated.
	p := NormParams{Channels: 1, Size: 3, Epsilon: 1e-12}
	require.NoError(t, Norm2DBatch(out, in, []int32{10}, []int32{4}, nil, nil, p, diag.WithRigor()))
	assert.Equal(t, []int32{0, 1, -1}, out)
}

func TestNormBatch_Rigor(t *testing.T) {
	out := make([]float32, 4)
	in := make([]float32, 4)

	err := Norm2DBatch(out, in, []float32{0, 0}, []float32{1}, []float32{1, 1, 1}, nil,
		NormParams{Channels: 2, Size: 2}, diag.WithRigor())
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrPrecondition)
	assert.Contains(t, err.Error(), "norm2d_batch: scale length 0 or 2: got 3")
	assert.Contains(t, err.Error(), "running_var length: got 1, want 2")

	err = Norm3DBatch(out, in, []float32{0}, []float32{1}, nil, nil, NormParams{Channels: 1, Size: 3}, diag.WithRigor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in_data length: got 4, want 9")

	err = Norm1DBatch(out, in, []float32{0}, []float32{1}, nil, nil,
		NormParams{Channels: 1, Size: 4, Epsilon: -1}, diag.WithRigor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epsilon >= 0")
}

func TestNorm1DBatch_IgnoresPost(t *testing.T) {
	in := []float32{-4}
	out := make([]float32, 1)

	p := NormParams{Channels: 1, Size: 1, Post: ReLUActivation()}
	require.NoError(t, Norm1DBatch(out, in, []float32{0}, []float32{1}, nil, nil, p, diag.WithRigor()))
	assert.Less(t, out[0], float32(0))
}
