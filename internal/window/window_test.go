package window

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guardedPlane traps every read outside its backing plane.
type guardedPlane struct {
	size  int
	data  []float64
	reads int
	t     *testing.T
}

func newGuardedPlane(t *testing.T, size int) *guardedPlane {
	data := make([]float64, size*size)
	for i := range data {
		data[i] = float64(i + 1)
	}
	return &guardedPlane{size: size, data: data, t: t}
}

func (p *guardedPlane) at(row, col int) float64 {
	p.t.Helper()
	if row < 0 || row >= p.size || col < 0 || col >= p.size {
		p.t.Fatalf("out-of-bounds read at (%d, %d) on %dx%d plane", row, col, p.size, p.size)
	}
	p.reads++
	return p.data[row*p.size+col]
}

func TestGeometry_Origin(t *testing.T) {
	g := Geometry{InSize: 5, KernelSize: 3, Stride: 2, Padding: 1}

	assert.Equal(t, -1, g.Origin(0))
	assert.Equal(t, 1, g.Origin(1))
	assert.Equal(t, 3, g.Origin(2))
}

func TestGeometry_Span(t *testing.T) {
	tests := []struct {
		name   string
		g      Geometry
		out    int
		lo, hi int
	}{
		{"no padding interior", Geometry{InSize: 4, KernelSize: 2, Stride: 2}, 1, 0, 2},
		{"leading padding", Geometry{InSize: 3, KernelSize: 3, Stride: 1, Padding: 1}, 0, 1, 3},
		{"trailing padding", Geometry{InSize: 3, KernelSize: 3, Stride: 1, Padding: 1}, 2, 0, 2},
		{"both sides", Geometry{InSize: 1, KernelSize: 3, Stride: 1, Padding: 1}, 0, 1, 2},
		{"window past input", Geometry{InSize: 4, KernelSize: 2, Stride: 3, Padding: 1}, 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.g.Span(tt.out)
			assert.Equal(t, tt.lo, lo, "lo")
			assert.Equal(t, tt.hi, hi, "hi")
		})
	}
}

func TestGeometry_TapsMarkPadding(t *testing.T) {
	g := Geometry{InSize: 3, KernelSize: 3, Stride: 1, Padding: 1}

	var padded, valid int
	for tap := range g.Taps(0, 0) {
		if tap.Padding {
			padded++
			assert.True(t, tap.RowIn < 0 || tap.ColIn < 0, "tap %+v", tap)
			continue
		}
		valid++
		assert.True(t, g.InBounds(tap.RowIn) && g.InBounds(tap.ColIn))
	}

	assert.Equal(t, 5, padded)
	assert.Equal(t, 4, valid)
	assert.Equal(t, valid, g.Valid(0, 0))
}

func TestGeometry_TapsOrder(t *testing.T) {
	g := Geometry{InSize: 4, KernelSize: 2, Stride: 2}

	var got [][2]int
	for tap := range g.Taps(1, 0) {
		got = append(got, [2]int{tap.RowIn, tap.ColIn})
	}

	assert.Equal(t, [][2]int{{2, 0}, {2, 1}, {3, 0}, {3, 1}}, got)
}

func TestGeometry_TapsEarlyStop(t *testing.T) {
	g := Geometry{InSize: 4, KernelSize: 3, Stride: 1}

	n := 0
	for range g.Taps(0, 0) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

// TestGeometry_NeverReadsPadding sweeps padding/stride/kernel combinations
// and reads the input only through a guarded accessor.
func TestGeometry_NeverReadsPadding(t *testing.T) {
	for in := 1; in <= 6; in++ {
		for k := 1; k <= 5; k++ {
			for s := 1; s <= 3; s++ {
				for p := 0; p <= k/2; p++ {
					if in+2*p < k {
						continue
					}
					g := Geometry{InSize: in, KernelSize: k, Stride: s, Padding: p}
					out := ConvOutSize(in, k, s, p)
					t.Run(fmt.Sprintf("in%d_k%d_s%d_p%d", in, k, s, p), func(t *testing.T) {
						plane := newGuardedPlane(t, in)
						expectedReads := 0
						for r := 0; r < out; r++ {
							for c := 0; c < out; c++ {
								for tap := range g.Taps(r, c) {
									if tap.Padding {
										continue
									}
									plane.at(tap.RowIn, tap.ColIn)
								}

								rlo, rhi := g.Span(r)
								clo, chi := g.Span(c)
								for kr := rlo; kr < rhi; kr++ {
									for kc := clo; kc < chi; kc++ {
										plane.at(g.Origin(r)+kr, g.Origin(c)+kc)
									}
								}
								expectedReads += 2 * g.Valid(r, c)
							}
						}
						require.Equal(t, expectedReads, plane.reads)
					})
				}
			}
		}
	}
}

func TestScatter_Span(t *testing.T) {
	s := Scatter{OutSize: 5, KernelSize: 3, Stride: 2, Padding: 1}

	lo, hi := s.Span(0)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 3, hi)

	lo, hi = s.Span(1)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 3, hi)

	lo, hi = s.Span(2)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 2, hi)
}

func TestScatter_StaysInsideOutput(t *testing.T) {
	for in := 1; in <= 5; in++ {
		for k := 1; k <= 4; k++ {
			for stride := 1; stride <= 3; stride++ {
				for p := 0; p < k; p++ {
					out := DeconvOutSize(in, k, stride, p)
					if out <= 0 {
						continue
					}
					s := Scatter{OutSize: out, KernelSize: k, Stride: stride, Padding: p}
					for i := 0; i < in; i++ {
						lo, hi := s.Span(i)
						for kk := lo; kk < hi; kk++ {
							o := s.Target(i) + kk
							require.GreaterOrEqual(t, o, 0)
							require.Less(t, o, out)
						}
					}
				}
			}
		}
	}
}
