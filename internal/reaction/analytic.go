package reaction

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/crmrates/internal/constants"
	"github.com/wildstyl3r/crmrates/internal/special"
)

// Analytic is the APID ionization rate of hydrogen from level n
// (Janev et al. 1993, svlib of DEGAS2). For n <= 3 the fit
// coefficients A and b[0..4] are tabulated, higher levels use
// closed-form expressions in n.
type Analytic struct {
	N          float64
	A          float64
	B          [5]float64
	ionization bool
}

func NewAnalytic(coeffs []float64, kind Kind) (*Analytic, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: APID fit needs the principal quantum number", ErrInvalidReactionSpec)
	}
	a := Analytic{N: coeffs[0], ionization: kind == KindIonization}
	if a.N <= 3 {
		if len(coeffs) < 7 {
			return nil, fmt.Errorf("%w: APID fit for n=%v needs 7 coefficients (n, A, b0..b4), got %d", ErrInvalidReactionSpec, a.N, len(coeffs))
		}
		a.A = coeffs[1]
		copy(a.B[:], coeffs[2:7])
	}
	return &a, nil
}

func (a *Analytic) Evaluate(T float64, _ State) (float64, error) {
	if !a.ionization {
		return 0, fmt.Errorf("%w: APID fits are defined for ionization only", ErrMissingFitBranch)
	}
	return a.Ionization(T), nil
}

// Ionization is the rate coefficient [cm^3 s^-1] at electron temperature T [eV].
func (a *Analytic) Ionization(T float64) float64 {
	I := constants.RydbergEnergy / (a.N * a.N)
	if a.N <= 3 {
		return a.lowLevel(I, T)
	}
	return a.highLevel(I, T)
}

func (a *Analytic) lowLevel(I, T float64) float64 {
	b := a.B
	zarg := I / T
	var zeint [6]float64
	for k := range zeint {
		zeint[k] = special.Expint(k+1, zarg)
	}

	zmul := [5]float64{
		b[0] + 2*b[1] + 3*b[2] + 4*b[3] + 5*b[4],
		-2 * (b[1] + 3*b[2] + 6*b[3] + 10*b[4]),
		3 * (b[2] + 4*b[3] + 10*b[4]),
		-4 * (b[3] + 5*b[4]),
		5 * b[4],
	}
	var zi1 float64
	for i := range zmul {
		zi1 += zmul[i] * zeint[i+1]
	}
	zi2 := a.A * zeint[0]
	zi3 := 1e-13 / (I * T)
	return 6.692e7 * math.Sqrt(T) * zi3 * (zi1 + zi2)
}

func (a *Analytic) highLevel(I, T float64) float64 {
	n := a.N
	g0 := 0.9935 + 0.2328/n - 0.1296/(n*n)
	g1 := -(0.6282 - 0.5598/n + 0.5299/(n*n)) / n
	g2 := -(0.3887 - 1.181/n + 1.470/(n*n)) / (n * n)
	an := 32. / (3. * math.Sqrt(3.) * math.Pi) * n * (g0/3. + g1/4. + g2/5.)
	rn := 1.94 * math.Pow(n, -1.57)
	bb := (4.0 - 18.63/n + 36.24/(n*n) - 28.09/(n*n*n)) / n
	bn := 2. * n * n * (5. + bb) / 3

	yn := I / T
	zn := rn + yn
	e1y := special.Expint(1, yn)
	e1z := special.Expint(1, zn)
	int1 := an * (e1y/yn - e1z/zn)
	xiy := special.Expint(0, yn) - 2.*e1y + special.Expint(2, yn)
	xiz := special.Expint(0, zn) - 2.*e1z + special.Expint(2, zn)
	int2 := (bn - an*math.Log(2.*n*n)) * (xiy - xiz)
	int3 := 1.76e-16 * n * n * yn * yn
	return 6.692e7 * math.Sqrt(T) * int3 * (int1 + int2)
}
