package reaction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/wildstyl3r/crmrates/internal/constants"
)

// values of the JUEL-3858 Sawada evaluation
const (
	sawadaElectronMass = 9.10938356e-31                 // [kg]
	sawadaH2Mass       = 2 * constants.HydrogenAtomMass // [kg]
	sawadaEV           = 1.602e-19                      // [J]
	sawadaQuadPoints   = 400
)

// CrossSection is a Sawada-type fit of an electron - H2 cross section,
// averaged over a Maxwellian electron distribution.
type CrossSection struct {
	Threshold float64 // Eth [eV]
	Q0        float64
	A         float64
	Omega     float64
	W         float64
	Gamma     float64
	Nu        float64
}

func NewCrossSection(coeffs []float64) (*CrossSection, error) {
	if len(coeffs) != 7 {
		return nil, fmt.Errorf("%w: SIGMA fit needs 7 coefficients (Eth, q0, A, Omega, W, gamma, nu), got %d", ErrInvalidReactionSpec, len(coeffs))
	}
	return &CrossSection{
		Threshold: coeffs[0],
		Q0:        coeffs[1],
		A:         coeffs[2],
		Omega:     coeffs[3],
		W:         coeffs[4],
		Gamma:     coeffs[5],
		Nu:        coeffs[6],
	}, nil
}

// Sigma is the fitted cross section at collision energy E [eV].
func (c *CrossSection) Sigma(E float64) float64 {
	if E < c.Threshold {
		return 0
	}
	var psi float64
	if c.Nu != 0 {
		psi += math.Pow(1-c.W/E, c.Nu)
	}
	if c.Gamma != 0 {
		psi += 1 - math.Pow(c.W/E, c.Gamma)
	}
	return c.Q0 * (c.A / (c.W * c.W)) * math.Pow(c.W/c.Threshold, c.Omega) * psi
}

// ThresholdSpeed is the centre-of-mass speed of the e - H2 pair at threshold [m/s].
func (c *CrossSection) ThresholdSpeed() float64 {
	mr := sawadaElectronMass * sawadaH2Mass / (sawadaElectronMass + sawadaH2Mass)
	return math.Sqrt(2 * c.Threshold * sawadaEV / mr)
}

func (c *CrossSection) Evaluate(T float64, _ State) (float64, error) {
	prefactor := 4 / math.Sqrt(math.Pi) * math.Sqrt(T*sawadaEV/(2*sawadaElectronMass))
	return prefactor * c.reducedIntegral(T), nil
}

// ∫_0^∞ x σ(xT) exp(-x) dx; σ vanishes below x0 = Eth/T, the tail
// is mapped onto [0, 1) by x = x0 + t/(1-t).
func (c *CrossSection) reducedIntegral(T float64) float64 {
	x0 := c.Threshold / T
	if math.IsInf(x0, 1) {
		return 0
	}
	x0 = math.Max(x0, 0)
	integrand := func(t float64) float64 {
		u := 1 - t
		x := x0 + t/u
		return x * c.Sigma(x*T) * math.Exp(-x) / (u * u)
	}
	return quad.Fixed(integrand, 0, 1, sawadaQuadPoints, quad.Legendre{}, 1)
}
