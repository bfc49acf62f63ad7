// Package grid holds the tabulated-fit interpolators: a piecewise-linear
// curve over a temperature grid and a bilinear surface over matrix indices.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/wildstyl3r/crmrates/internal/utils"
)

var ErrBadGrid = errors.New("grid: malformed grid")

// Linear1D is a piecewise-linear interpolant over strictly increasing knots.
// Outside the knot range it returns the value at the nearest end.
type Linear1D struct {
	knots []float64
	pl    interp.PiecewiseLinear
}

func NewLinear1D(xs, ys []float64) (*Linear1D, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 knots, got %d", ErrBadGrid, len(xs))
	}
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d knots but %d values", ErrBadGrid, len(xs), len(ys))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("%w: knots not strictly increasing at %d (%v after %v)", ErrBadGrid, i, xs[i], xs[i-1])
		}
	}
	l := Linear1D{knots: append([]float64(nil), xs...)}
	if err := l.pl.Fit(l.knots, append([]float64(nil), ys...)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGrid, err)
	}
	return &l, nil
}

func (l *Linear1D) At(x float64) float64 {
	return l.pl.Predict(x)
}

func (l *Linear1D) First() float64 { return l.knots[0] }
func (l *Linear1D) Last() float64  { return l.knots[len(l.knots)-1] }

// Bilinear interpolates a matrix over its integer indices: x runs along
// columns 0..c-1, y along rows 0..r-1. Arguments are clamped to the grid.
type Bilinear struct {
	m *mat.Dense
}

func NewBilinear(m *mat.Dense) (*Bilinear, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrBadGrid)
	}
	r, c := m.Dims()
	if r < 2 || c < 2 {
		return nil, fmt.Errorf("%w: need at least 2x2 values, got %dx%d", ErrBadGrid, r, c)
	}
	return &Bilinear{m: m}, nil
}

func (b *Bilinear) Dims() (rows, cols int) {
	return b.m.Dims()
}

func (b *Bilinear) At(x, y float64) float64 {
	r, c := b.m.Dims()
	x = utils.Clamp(x, 0, float64(c-1))
	y = utils.Clamp(y, 0, float64(r-1))

	i0, tx := cell(x, c)
	j0, ty := cell(y, r)

	v00 := b.m.At(j0, i0)
	v01 := b.m.At(j0, i0+1)
	v10 := b.m.At(j0+1, i0)
	v11 := b.m.At(j0+1, i0+1)
	return (1-ty)*((1-tx)*v00+tx*v01) + ty*((1-tx)*v10+tx*v11)
}

// lower cell index and fractional offset of v in a grid of n points
func cell(v float64, n int) (int, float64) {
	i := int(math.Floor(v))
	if i >= n-1 {
		i = n - 2
	}
	return i, v - float64(i)
}
