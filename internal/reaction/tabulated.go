package reaction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wildstyl3r/crmrates/internal/grid"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

const (
	adasPrefactor  = 2.1716e-8
	adasRydberg    = 13.6048 // [eV]
	radiatedScale  = 6.242e11
	ueMaxTIndex    = 60.
	ueMaxNIndex    = 15.
	ueTOffset      = 1.2
	ueNOffset      = 10.
	ueTIndexPerDec = 10.
	ueNIndexPerDec = 2.
)

// TabulatedADAS interpolates an ADAS table over its temperature grid.
// Below the grid the rate ramps linearly to zero, above it stays at the last value.
type TabulatedADAS struct {
	curve *grid.Linear1D
}

func NewTabulatedADAS(tarr, coeffs []float64) (*TabulatedADAS, error) {
	curve, err := grid.NewLinear1D(tarr, coeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: ADAS temperature grid: %v", ErrInvalidReactionSpec, err)
	}
	return &TabulatedADAS{curve: curve}, nil
}

func (a *TabulatedADAS) Evaluate(T float64, s State) (float64, error) {
	tUse, scale := T, 1.
	if T < a.curve.First() {
		tUse = a.curve.First()
		scale = T / tUse
	}
	tUse = math.Min(tUse, a.curve.Last())
	return scale * adasPrefactor * (1 / s.OmegaJ) * math.Sqrt(adasRydberg/tUse) * a.curve.At(tUse), nil
}

// Tabulated2D is a UEDGE table: rows are log-temperature indices,
// columns log-density indices.
type Tabulated2D struct {
	surface    *grid.Bilinear
	multiplier float64
}

func NewTabulated2D(coeffs *mat.Dense, kind Kind) (*Tabulated2D, error) {
	surface, err := grid.NewBilinear(coeffs)
	if err != nil {
		return nil, fmt.Errorf("%w: UE table: %v", ErrInvalidReactionSpec, err)
	}
	t := Tabulated2D{surface: surface, multiplier: 1}
	if kind == KindRadiated {
		t.multiplier = radiatedScale
	}
	return &t, nil
}

// Indices maps (Te [eV], ne [cm^-3]) onto the table's fractional row and column.
func Indices(te, ne float64) (jt, jn float64) {
	jt = utils.Clamp(ueTIndexPerDec*(math.Log10(te+1e-99)+ueTOffset), 0, ueMaxTIndex)
	jn = utils.Clamp(ueNIndexPerDec*(math.Log10(ne)-ueNOffset), 0, ueMaxNIndex)
	return
}

// Evaluate uses the electron temperature regardless of the projectile.
func (u *Tabulated2D) Evaluate(_ float64, s State) (float64, error) {
	if !s.HasNe {
		return 0, fmt.Errorf("%w: electron density required by UE fit", ErrMissingArgument)
	}
	jt, jn := Indices(s.Te, s.Ne)
	return u.surface.At(jn, jt) * u.multiplier, nil
}

func (u *Tabulated2D) Multiplier() float64 {
	return u.multiplier
}
