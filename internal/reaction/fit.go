package reaction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Fit evaluates a rate coefficient at the reaction temperature T [eV]
// for the given plasma state.
type Fit interface {
	Evaluate(T float64, s State) (float64, error)
}

const (
	polyOrder = 9
	polyFloor = 0.5 // [eV] lower validity limit of EIRENE fits
)

// Polynomial is an EIRENE log-log fit: ln k = Σ c_i ln(T)^i, or
// ln k = Σ c_ij ln(T)^i ln(E)^j for the (T, E) variant.
// Below 0.5 eV the rate ramps linearly to zero.
type Polynomial struct {
	t  []float64
	te *mat.Dense
}

func NewPolynomial(coeffs []float64) (*Polynomial, error) {
	if len(coeffs) != polyOrder {
		return nil, fmt.Errorf("%w: RATE fit needs %d coefficients, got %d", ErrInvalidReactionSpec, polyOrder, len(coeffs))
	}
	return &Polynomial{t: append([]float64(nil), coeffs...)}, nil
}

func NewPolynomial2D(coeffs *mat.Dense) (*Polynomial, error) {
	if r, c := coeffs.Dims(); r != polyOrder || c != polyOrder {
		return nil, fmt.Errorf("%w: RATE (T,E) fit needs %dx%d coefficients, got %dx%d", ErrInvalidReactionSpec, polyOrder, polyOrder, r, c)
	}
	return &Polynomial{te: mat.DenseCopyOf(coeffs)}, nil
}

func (p *Polynomial) TwoDimensional() bool {
	return p.te != nil
}

func (p *Polynomial) Evaluate(T float64, s State) (float64, error) {
	tUse, scale := T, 1.
	if T < polyFloor {
		tUse, scale = polyFloor, T/polyFloor
	}
	lt := math.Log(tUse)

	var sum float64
	if p.te == nil {
		for i := range polyOrder {
			sum += p.t[i] * math.Pow(lt, float64(i))
		}
		return scale * math.Exp(sum), nil
	}

	if !s.HasE {
		return 0, fmt.Errorf("%w: target energy E required by (T,E) RATE fit", ErrMissingArgument)
	}
	le := math.Log(s.E)
	for i := range polyOrder {
		for j := range polyOrder {
			sum += p.te.At(i, j) * math.Pow(lt, float64(i)) * math.Pow(le, float64(j))
		}
	}
	return scale * math.Exp(sum), nil
}

// Constant is a precomputed rate, returned as is.
type Constant struct {
	Value float64
}

func NewConstant(coeffs []float64) (*Constant, error) {
	if len(coeffs) != 1 {
		return nil, fmt.Errorf("%w: COEFFICIENT fit needs a single value, got %d", ErrInvalidReactionSpec, len(coeffs))
	}
	return &Constant{Value: coeffs[0]}, nil
}

func (c *Constant) Evaluate(float64, State) (float64, error) {
	return c.Value, nil
}

type unknownFit struct {
	tag string
}

func (u unknownFit) Evaluate(float64, State) (float64, error) {
	return 0, fmt.Errorf("%w %q", ErrUnknownFitType, u.tag)
}
