package cpu

import (
	"math/rand/v2"
	"slices"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
)

// recordLogger captures diagnostics for assertions.
type recordLogger struct {
	infos []string
	warns []string
	args  [][]any
}

func (r *recordLogger) Info(msg string, args ...any) {
	r.infos = append(r.infos, msg)
	r.args = append(r.args, args)
}

func (r *recordLogger) Warn(msg string, args ...any) {
	r.warns = append(r.warns, msg)
	r.args = append(r.args, args)
}

// randFloat32 returns n deterministic values in [-1, 1).
func randFloat32(seed uint64, n int) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float32, n)
	for i := range out {
		out[i] = rng.Float32()*2 - 1
	}
	return out
}

// seq returns [start, start+1, ...] of length n.
func seq[T int32 | float32 | float64](n int, start T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = start + T(i)
	}
	return out
}

// filled returns n copies of v.
func filled[T int32 | float32 | float64](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// clipped returns a copy of data with no spare capacity. A kernel that
// indexes outside it panics with a bounds error.
func clipped(data []float32) []float32 {
	return slices.Clip(slices.Clone(data))
}

// parallelOpt forces parallel execution even for small problems.
func parallelOpt() diag.Option {
	return diag.WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
}
