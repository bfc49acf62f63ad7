// Package xsec computes Maxwellian rate coefficients from LXCat cross-section sets.
package xsec

import (
	"fmt"
	"math"

	"github.com/wildstyl3r/lxgata"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/wildstyl3r/crmrates/internal/utils"
)

const quadPoints = 200

// Process gives the cross section [m^2] of one collision process at an electron energy [eV].
type Process interface {
	CrossSectionAt(energy float64) float64
}

// Set is a loaded LXCat file.
type Set struct {
	collisions lxgata.Collisions
	Labels     []string
}

func Load(path string) (*Set, error) {
	collisions, err := lxgata.LoadCrossSections(path)
	if err != nil {
		return nil, fmt.Errorf("invalid cross section file: %w", err)
	}
	s := Set{collisions: collisions}
	for _, c := range collisions {
		s.Labels = append(s.Labels, fmt.Sprintf("%s_%g", c.Type, c.Threshold))
	}
	return &s, nil
}

// Rates returns the Maxwellian rate coefficient [cm^3 s^-1] of every process at te [eV].
func (s *Set) Rates(te float64) []float64 {
	rates := make([]float64, len(s.collisions))
	for i := range s.collisions {
		c := &s.collisions[i]
		rates[i] = MaxwellRate(c, c.Threshold, te)
	}
	return rates
}

// MaxwellRate averages the cross section of p, zero below threshold [eV],
// over a Maxwellian at te [eV]:
// k = 2/√π v(Te) ∫_{x0}^∞ σ(x Te) x exp(-x) dx, x0 = threshold/Te, v(Te) = √(2 e Te / m_e).
func MaxwellRate(p Process, threshold, te float64) float64 {
	if te <= 0 {
		return 0
	}
	x0 := math.Max(threshold/te, 0)
	// x = x0 + t/(1-t) maps [0, 1) onto [x0, ∞)
	integrand := func(t float64) float64 {
		u := 1 - t
		x := x0 + t/u
		return x * p.CrossSectionAt(x*te) * math.Exp(-x) / (u * u)
	}
	integral := quad.Fixed(integrand, 0, 1, quadPoints, quad.Legendre{}, 1)
	return 2 / math.Sqrt(math.Pi) * utils.EV2electronVelocity(te) * integral * 1e6 // m^3 -> cm^3
}
