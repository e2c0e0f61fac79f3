// Package selfcheck verifies the kernel properties at run time.
//
// Each Check exercises one property on small deterministic inputs and
// returns a descriptive error when the property does not hold. The dlr
// check command runs them all.
package selfcheck

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/born-ml/dlr/internal/backend/cpu"
	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/tensor"
	"github.com/born-ml/dlr/internal/window"
)

// Check is one verifiable kernel property.
type Check struct {
	Name   string
	Kernel string // kernel under test, as listed by cpu.Kernels
	Run    func(opts []diag.Option) error
}

// Result is the outcome of one Check.
type Result struct {
	Name   string
	Kernel string
	Err    error
}

// Passed reports whether the check succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}

// Checks returns every check in a fixed order.
func Checks() []Check {
	return []Check{
		{"window skips padding", "conv2d", windowSkipsPadding},
		{"padding is never read", "conv2d", paddingNeverRead},
		{"zero kernel yields bias", "conv2d", zeroKernelYieldsBias},
		{"conv/deconv size round trip", "deconv2d", sizeRoundTrip},
		{"avg pool divides by kernel area", "avgpool2d", avgPoolFullArea},
		{"max pool equals true maximum", "maxpool2d", maxPoolTrueMax},
		{"leaky relu slope", "leaky_relu", leakyReLUSlope},
		{"sigmoid midpoint and monotonic", "sigmoid", sigmoidMonotonic},
		{"linear identity", "linear", linearIdentity},
		{"concat shapes", "concat2d", concatShapes},
		{"parallel equals sequential", "conv2d", parallelMatchesSequential},
		{"rigor rejects bad shapes", "conv2d", rigorRejects},
	}
}

// Run executes every check with opts and returns the results in order.
func Run(opts ...diag.Option) []Result {
	return RunChecks(Checks(), opts...)
}

// RunChecks executes checks with opts and returns the results in order.
// A check that panics fails with the panic value; the remaining checks still run.
func RunChecks(checks []Check, opts ...diag.Option) []Result {
	results := make([]Result, len(checks))
	for i, c := range checks {
		results[i] = Result{Name: c.Name, Kernel: c.Kernel, Err: runCheck(c, opts)}
	}
	return results
}

func runCheck(c Check, opts []diag.Option) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(opts)
}

// Failed returns the joined errors of the failed results, or nil.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

func random(seed uint64, n int) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	out := make([]float32, n)
	for i := range out {
		out[i] = rng.Float32()*2 - 1
	}
	return out
}

func diff[T any](want, got T) error {
	if d := cmp.Diff(want, got); d != "" {
		return fmt.Errorf("mismatch (-want +got):\n%s", d)
	}
	return nil
}

// windowSkipsPadding compares the span arithmetic against an explicit walk
// over every tap for a range of geometries.
func windowSkipsPadding(_ []diag.Option) error {
	for in := 1; in <= 6; in++ {
		for k := 1; k <= 5; k += 2 {
			for s := 1; s <= 3; s++ {
				for p := 0; p <= k/2; p++ {
					g := window.Geometry{InSize: in, KernelSize: k, Stride: s, Padding: p}
					out := window.ConvOutSize(in, k, s, p)
					for r := range out {
						for c := range out {
							valid := 0
							for tap := range g.Taps(r, c) {
								if !tap.Padding {
									valid++
								}
							}
							if valid != g.Valid(r, c) {
								return fmt.Errorf("%+v at (%d,%d): %d taps in bounds, span says %d",
									g, r, c, valid, g.Valid(r, c))
							}
						}
					}
				}
			}
		}
	}
	return nil
}

// paddingNeverRead runs a padded convolution over an input clipped to its
// length, so a read outside it panics and fails the check. Padded taps must
// contribute nothing: the output equals a gather that skips them.
// It runs sequentially so the panic reaches RunChecks.
func paddingNeverRead(opts []diag.Option) error {
	opts = append(slices.Clone(opts), diag.WithParallel(parallel.Sequential()))
	const inSize, k, pad = 5, 3, 1
	in := slices.Clip(random(1, inSize*inSize))
	kernel := random(2, k*k)

	p := cpu.Conv2DParams{OutSize: inSize, InSize: inSize, KernelSize: k, InChannels: 1, OutChannels: 1, Stride: 1, Padding: pad}
	out := make([]float32, inSize*inSize)
	if err := cpu.Conv2D(out, in, kernel, nil, p, opts...); err != nil {
		return err
	}

	want := make([]float32, inSize*inSize)
	for r := range inSize {
		for c := range inSize {
			var sum float32
			for kr := range k {
				for kc := range k {
					y, x := r+kr-pad, c+kc-pad
					if y >= 0 && y < inSize && x >= 0 && x < inSize {
						sum += in[y*inSize+x] * kernel[kr*k+kc]
					}
				}
			}
			want[r*inSize+c] = sum
		}
	}
	for i := range want {
		if math.Abs(float64(want[i]-out[i])) > 1e-5 {
			return fmt.Errorf("output[%d] = %g, want %g", i, out[i], want[i])
		}
	}
	return nil
}

func zeroKernelYieldsBias(opts []diag.Option) error {
	p := cpu.Conv2DParams{OutSize: 3, InSize: 5, KernelSize: 3, InChannels: 2, OutChannels: 2, Stride: 2, Padding: 1}
	in := random(3, 2*5*5)
	kernel := make([]float32, 2*2*3*3)
	out := make([]float32, 2*3*3)

	if err := cpu.Conv2D(out, in, kernel, []float32{1.5, -2}, p, opts...); err != nil {
		return err
	}
	want := []float32{1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, 1.5, -2, -2, -2, -2, -2, -2, -2, -2, -2}
	if err := diff(want, out); err != nil {
		return err
	}

	if err := cpu.Conv2D(out, in, kernel, nil, p, opts...); err != nil {
		return err
	}
	return diff(make([]float32, len(out)), out)
}

func sizeRoundTrip(_ []diag.Option) error {
	for in := 1; in <= 8; in++ {
		for k := 1; k <= 5; k += 2 {
			for s := 1; s <= 3; s++ {
				for p := 0; p <= k/2; p++ {
					up := window.DeconvOutSize(in, k, s, p)
					if up < 1 {
						continue
					}
					if down := window.ConvOutSize(up, k, s, p); down != in {
						return fmt.Errorf("in=%d k=%d s=%d p=%d: deconv %d, conv back %d", in, k, s, p, up, down)
					}
				}
			}
		}
	}
	return nil
}

// avgPoolFullArea pools a single value whose every window has one real
// cell and three padding cells.
func avgPoolFullArea(opts []diag.Option) error {
	p := cpu.Pool2DParams{OutSize: 2, InSize: 1, KernelSize: 2, Channels: 1, Stride: 1, Padding: 1}
	out := make([]float64, 4)
	if err := cpu.AvgPool2D(out, []float64{8}, p, opts...); err != nil {
		return err
	}
	return diff([]float64{2, 2, 2, 2}, out)
}

// maxPoolTrueMax pools a whole plane into one value and checks it against
// the maximum under a permutation of the input.
func maxPoolTrueMax(opts []diag.Option) error {
	const size = 6
	in := random(4, size*size)
	in[7], in[29] = 2, 2 // duplicate maximum

	p := cpu.Pool2DParams{OutSize: 1, InSize: size, KernelSize: size, Channels: 1, Stride: 1}
	out := make([]float32, 1)
	if err := cpu.MaxPool2D(out, in, p, opts...); err != nil {
		return err
	}
	if out[0] != slices.Max(in) {
		return fmt.Errorf("got %v, want %v", out[0], slices.Max(in))
	}

	shuffled := slices.Clone(in)
	rand.New(rand.NewPCG(5, 6)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	permuted := make([]float32, 1)
	if err := cpu.MaxPool2D(permuted, shuffled, p, opts...); err != nil {
		return err
	}
	return diff(out, permuted)
}

func leakyReLUSlope(opts []diag.Option) error {
	in := []float32{-2, -1, 0, 1, 2}
	out := make([]float32, len(in))
	if err := cpu.LeakyReLU(out, in, cpu.ActivationParams{Channels: 1, Size: len(in)}, cpu.DefaultNegativeSlope, opts...); err != nil {
		return err
	}
	return diff([]float32{-0.02, -0.01, 0, 1, 2}, out)
}

func sigmoidMonotonic(opts []diag.Option) error {
	in := make([]float64, 41)
	for i := range in {
		in[i] = float64(i-20) / 4
	}
	out := make([]float64, len(in))
	if err := cpu.Sigmoid(out, in, cpu.ActivationParams{Channels: 1, Size: len(in)}, opts...); err != nil {
		return err
	}
	if out[20] != 0.5 {
		return fmt.Errorf("sigmoid(0) = %v, want 0.5", out[20])
	}
	for i := 1; i < len(out); i++ {
		if out[i] < out[i-1] {
			return fmt.Errorf("sigmoid(%v) = %v < sigmoid(%v) = %v", in[i], out[i], in[i-1], out[i-1])
		}
	}
	return nil
}

func linearIdentity(opts []diag.Option) error {
	const n = 4
	weight := make([]int32, n*n)
	for i := range n {
		weight[i*n+i] = 1
	}
	in := []int32{7, -3, 0, 12}
	out := make([]int32, n)
	if err := cpu.Linear(out, in, weight, nil, cpu.LinearParams{InSize: n, OutSize: n}, opts...); err != nil {
		return err
	}
	return diff(in, out)
}

func concatShapes(opts []diag.Option) error {
	a := []int32{1, 1, 1, 1}
	b := []int32{0, 0, 0, 0}

	p := cpu.Concat2DParams{RowsA: 2, ColsA: 2, RowsB: 2, ColsB: 2, Dim: 0}
	out := make([]int32, 8)
	if err := cpu.Concat2D(out, a, b, p, opts...); err != nil {
		return err
	}
	if err := diff([]int32{1, 1, 1, 1, 0, 0, 0, 0}, out); err != nil {
		return fmt.Errorf("dim 0: %w", err)
	}
	if s := p.OutShape(); !s.Equal(tensor.Shape{4, 2}) {
		return fmt.Errorf("dim 0: shape %v, want [4 x 2]", s)
	}

	p.Dim = 1
	if err := cpu.Concat2D(out, a, b, p, opts...); err != nil {
		return err
	}
	if err := diff([]int32{1, 1, 0, 0, 1, 1, 0, 0}, out); err != nil {
		return fmt.Errorf("dim 1: %w", err)
	}
	if s := p.OutShape(); !s.Equal(tensor.Shape{2, 4}) {
		return fmt.Errorf("dim 1: shape %v, want [2 x 4]", s)
	}
	return nil
}

func parallelMatchesSequential(opts []diag.Option) error {
	p := cpu.Conv2DParams{OutSize: 8, InSize: 8, KernelSize: 3, InChannels: 3, OutChannels: 6, Stride: 1, Padding: 1}
	in := random(7, 3*8*8)
	kernel := random(8, 6*3*3*3)
	bias := random(9, 6)

	seq := make([]float32, 6*8*8)
	par := make([]float32, len(seq))
	cfg := parallel.DefaultConfig()
	cfg.Enabled, cfg.NumWorkers = true, max(cfg.NumWorkers, 2)

	if err := cpu.Conv2D(seq, in, kernel, bias, p, append(slices.Clone(opts), diag.WithParallel(parallel.Sequential()))...); err != nil {
		return err
	}
	if err := cpu.Conv2D(par, in, kernel, bias, p, append(slices.Clone(opts), diag.WithParallel(cfg))...); err != nil {
		return err
	}
	return diff(seq, par)
}

func rigorRejects(opts []diag.Option) error {
	// Even kernel and a short output buffer.
	p := cpu.Conv2DParams{OutSize: 4, InSize: 4, KernelSize: 2, InChannels: 1, OutChannels: 1, Stride: 1}
	out := make([]float32, 3)
	err := cpu.Conv2D(out, make([]float32, 16), make([]float32, 4), nil, p, append(slices.Clone(opts), diag.WithRigor())...)
	if !errors.Is(err, diag.ErrPrecondition) {
		return fmt.Errorf("got %v, want a precondition error", err)
	}
	var pe *diag.PreconditionError
	if !errors.As(err, &pe) || pe.Op != "conv2d" {
		return fmt.Errorf("error %v does not name conv2d", err)
	}
	return diff(make([]float32, 3), out)
}
