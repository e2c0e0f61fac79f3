package cpu

import (
	"testing"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_Identity(t *testing.T) {
	in := []float32{1, 2, 3}
	weight := []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	bias := []float32{0, 0, 0}

	out := make([]float32, 3)
	require.NoError(t, Linear(out, in, weight, bias, LinearParams{InSize: 3, OutSize: 3}, diag.WithRigor()))
	assert.Equal(t, []float32{1, 2, 3}, out)
}

func TestLinear_ProjectionWithBias(t *testing.T) {
	// [2] <- [3] projection.
	in := []int32{1, 2, 3}
	weight := []int32{
		1, 1, 1,
		2, 0, -1,
	}

	out := make([]int32, 2)
	require.NoError(t, Linear(out, in, weight, []int32{10, -1}, LinearParams{InSize: 3, OutSize: 2}, diag.WithRigor()))

	if diff := cmp.Diff([]int32{16, -2}, out); diff != "" {
		t.Errorf("Linear mismatch (-want +got):\n%s", diff)
	}
}

func TestLinear_FusedActivationSeesBias(t *testing.T) {
	in := []float64{1}
	weight := []float64{-1}
	bias := []float64{-1}
	out := make([]float64, 1)

	// ReLU of -1 + -1.
	p := LinearParams{InSize: 1, OutSize: 1, Post: ReLUActivation()}
	require.NoError(t, Linear(out, in, weight, bias, p))
	assert.Equal(t, 0.0, out[0])

	// LeakyReLU scales the biased sum: -2 * 0.5.
	p.Post = LeakyReLUActivation(0.5)
	require.NoError(t, Linear(out, in, weight, bias, p))
	assert.Equal(t, -1.0, out[0])

	// A positive biased sum passes through.
	require.NoError(t, Linear(out, in, weight, []float64{3}, p))
	assert.Equal(t, 2.0, out[0])
}

func TestLinearNd(t *testing.T) {
	// Three input vectors of size 2, output size 2.
	in := []float32{
		1, 2,
		3, 4,
		-1, 0,
	}
	weight := []float32{
		1, 1,
		1, -1,
	}
	bias := []float32{0, 1}

	p := LinearParams{InSize: 2, OutSize: 2, NDim: 3}
	out := make([]float32, 6)
	require.NoError(t, LinearNd(out, in, weight, bias, p, diag.WithRigor()))

	expected := []float32{
		3, 0,
		7, 0,
		-1, 0,
	}
	assert.Equal(t, expected, out)
}

func TestLinearNd_MatchesLinearPerVector(t *testing.T) {
	const in, outSize, ndim = 7, 5, 4
	x := randFloat32(1, ndim*in)
	w := randFloat32(2, outSize*in)
	b := randFloat32(3, outSize)

	p := LinearParams{InSize: in, OutSize: outSize, NDim: ndim, Post: LeakyReLUActivation(DefaultNegativeSlope)}
	batched := make([]float32, ndim*outSize)
	require.NoError(t, LinearNd(batched, x, w, b, p, diag.WithRigor(), parallelOpt()))

	for v := 0; v < ndim; v++ {
		single := make([]float32, outSize)
		require.NoError(t, Linear(single, x[v*in:(v+1)*in], w, b, p, diag.WithRigor()))
		assert.Equal(t, single, batched[v*outSize:(v+1)*outSize], "vector %d", v)
	}
}

func TestLinear_Rigor(t *testing.T) {
	out := make([]float32, 2)

	err := Linear(out, make([]float32, 3), make([]float32, 6), []float32{1}, LinearParams{InSize: 3, OutSize: 2}, diag.WithRigor())
	require.Error(t, err)
	assert.ErrorIs(t, err, diag.ErrPrecondition)
	assert.Contains(t, err.Error(), "linear: bias length 0 or 2: got 1")

	err = LinearNd(out, make([]float32, 3), make([]float32, 6), nil, LinearParams{InSize: 3, OutSize: 2}, diag.WithRigor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linear_nd: ndim > 0")

	err = Linear(out, make([]float32, 3), make([]float32, 6), nil, LinearParams{InSize: 0, OutSize: 2}, diag.WithRigor())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in_size > 0")
}
