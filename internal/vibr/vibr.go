// Package vibr maps vibrational populations of H2/D2 and folds
// vibrationally resolved rates into effective ones.
package vibr

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

// D2Levels are the vibrational level energies of the D2 ground state [cm^-1].
var D2Levels = []float64{0, 4303, 8436, 12402, 16204, 19841, 23314, 26622, 29765, 32785, 35548,
	38184, 40642, 42917, 44998, 46876, 48533, 49953, 51122, 52001, 52560}

// MaxMappedLevels caps the Franck-Condon mapping.
const MaxMappedLevels = 20

var ErrShape = errors.New("vibr: shape mismatch")

// Boltzmann returns exp(-ΔE_v / T) for every level, T in the units of the level energies.
func Boltzmann(T float64, levels []float64) []float64 {
	if levels == nil {
		levels = D2Levels
	}
	pop := make([]float64, len(levels))
	for i := range levels {
		pop[i] = math.Exp(-levels[i] / T)
	}
	return pop
}

// MapUpper projects a ground-state population onto the upper electronic
// state through the Franck-Condon table fc (rows: upper level, columns:
// ground level). The result is normalised to its first level.
func MapUpper(ground []float64, fc *mat.Dense) ([]float64, error) {
	n := min(len(ground), MaxMappedLevels)
	r, c := fc.Dims()
	if r < n || c < n {
		return nil, fmt.Errorf("%w: Franck-Condon table is %dx%d, need at least %dx%d", ErrShape, r, c, n, n)
	}

	upper := make([]float64, n)
	row := make([]float64, c)
	for i := range upper {
		mat.Row(row, i, fc)
		sum := utils.SumSlice(row)
		for j := range n {
			upper[i] += ground[j] * row[j] / sum
		}
	}
	floats.Scale(1/upper[0], upper)
	return upper, nil
}

// Normalize scales dist in place to unit sum and returns it.
func Normalize(dist []float64) []float64 {
	floats.Scale(1/floats.Sum(dist), dist)
	return dist
}

// EIRENE1D is the bare EIRENE 1D fit in m^3/s, without the low temperature ramp.
func EIRENE1D(coeffs []float64, T float64) float64 {
	var o float64
	lt := math.Log(T)
	for i := range coeffs {
		o += coeffs[i] * math.Pow(lt, float64(i))
	}
	return 1e-6 * math.Exp(o)
}

// Effective weights vibrationally resolved rates by the level populations.
func Effective(rates, weights []float64) (float64, error) {
	if len(rates) != len(weights) {
		return 0, fmt.Errorf("%w: %d rates, %d weights", ErrShape, len(rates), len(weights))
	}
	return floats.Dot(rates, weights), nil
}

// EffectiveAt evaluates one reaction per vibrational level at s and folds them.
func EffectiveAt(reactions []*reaction.Reaction, weights []float64, s reaction.State) (float64, error) {
	rates := make([]float64, len(reactions))
	for i, r := range reactions {
		k, err := r.RateAt(s)
		if err != nil {
			return 0, fmt.Errorf("level %d: %w", i, err)
		}
		rates[i] = k
	}
	return Effective(rates, weights)
}
