// Package reaction evaluates rate coefficients of hydrogen/deuterium
// plasma-chemistry reactions for a collisional-radiative model.
package reaction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Length of the source-table prefix carried by tagged species handles.
const sourcePrefixLen = 4

// Stoichiometry describes both sides of a reaction together with the
// energy bookkeeping record of the source table.
type Stoichiometry struct {
	Reactants []string  `toml:"reactants"`
	Fragments []string  `toml:"fragments"`
	RMult     []float64 `toml:"r_mult"`
	FMult     []float64 `toml:"f_mult"`
	Energy    []float64 `toml:"energy"`

	// Prefixed handles start with a 4-character source-table tag that is stripped.
	Prefixed bool `toml:"prefixed"`
}

// Spec is an already parsed reaction database record.
type Spec struct {
	Name     string        `toml:"name"`
	Database string        `toml:"database"`
	S        Stoichiometry `toml:"stoichiometry"`
	Coeffs   []float64     `toml:"coeffs"`
	Coeffs2D [][]float64   `toml:"coeffs2d"`
	Type     string        `toml:"type"`
	Tarr     []float64     `toml:"tarr"`
}

// EnergyBalance holds the bookkeeping values of the source table. They are
// not used by the rate formulas and are passed through to energy-balance consumers.
type EnergyBalance struct {
	Released   float64 // S_r, energy[0]
	Potential  float64 // S_V, energy[1]
	StatWeight float64 // S_g, energy[-2]
	Loss       float64 // S_e, energy[-1]
}

type Reaction struct {
	Name      string
	Database  string
	Reactants []string
	RMult     []float64
	Fragments []string
	FMult     []float64
	Energy    EnergyBalance
	Type      FitType
	Tag       string
	Kind      Kind

	projectile Projectile
	fit        Fit
	log        logrus.FieldLogger
}

func New(spec Spec) (*Reaction, error) {
	r := Reaction{
		Name:     spec.Name,
		Database: spec.Database,
		Type:     ParseFitType(spec.Type),
		Tag:      spec.Type,
		Kind:     KindOf(spec.Name),
		log:      logrus.StandardLogger(),
	}
	var err error
	if r.Reactants, r.RMult, err = side(spec.S.Reactants, spec.S.RMult, spec.S.Prefixed); err != nil {
		return nil, fmt.Errorf("%s: reactants: %w", spec.Name, err)
	}
	if r.Fragments, r.FMult, err = side(spec.S.Fragments, spec.S.FMult, spec.S.Prefixed); err != nil {
		return nil, fmt.Errorf("%s: fragments: %w", spec.Name, err)
	}
	if len(spec.S.Energy) < 2 {
		return nil, fmt.Errorf("%w: %s: energy record needs at least 2 values, got %d", ErrInvalidReactionSpec, spec.Name, len(spec.S.Energy))
	}
	e := spec.S.Energy
	r.Energy = EnergyBalance{
		Released:   e[0],
		Potential:  e[1],
		StatWeight: e[len(e)-2],
		Loss:       e[len(e)-1],
	}
	r.projectile = projectileOf(r.Reactants)

	if r.fit, err = r.buildFit(spec); err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	return &r, nil
}

func side(handles []string, mult []float64, prefixed bool) ([]string, []float64, error) {
	if mult == nil {
		mult = make([]float64, len(handles))
		for i := range mult {
			mult[i] = 1
		}
	}
	if len(mult) != len(handles) {
		return nil, nil, fmt.Errorf("%w: %d species but %d multipliers", ErrInvalidReactionSpec, len(handles), len(mult))
	}
	out := make([]string, len(handles))
	for i, h := range handles {
		if prefixed && len(h) >= sourcePrefixLen {
			h = h[sourcePrefixLen:]
		}
		out[i] = strings.TrimSpace(h)
	}
	return out, append([]float64(nil), mult...), nil
}

func (r *Reaction) buildFit(spec Spec) (Fit, error) {
	twoD := spec.Coeffs2D != nil
	if twoD && spec.Coeffs != nil {
		return nil, fmt.Errorf("%w: both 1D and 2D coefficients given", ErrInvalidReactionSpec)
	}
	var m *mat.Dense
	if twoD {
		var err error
		if m, err = dense(spec.Coeffs2D); err != nil {
			return nil, err
		}
	}
	rank := func(want2D bool) error {
		if twoD != want2D {
			return fmt.Errorf("%w: %s fit does not take %s coefficients", ErrInvalidReactionSpec, r.Type, map[bool]string{true: "2D", false: "1D"}[twoD])
		}
		return nil
	}

	switch r.Type {
	case FitRate:
		if twoD {
			return NewPolynomial2D(m)
		}
		return NewPolynomial(spec.Coeffs)
	case FitCoefficient:
		if err := rank(false); err != nil {
			return nil, err
		}
		return NewConstant(spec.Coeffs)
	case FitSigma:
		if err := rank(false); err != nil {
			return nil, err
		}
		return NewCrossSection(spec.Coeffs)
	case FitADAS:
		if err := rank(false); err != nil {
			return nil, err
		}
		return NewTabulatedADAS(spec.Tarr, spec.Coeffs)
	case FitUE:
		if err := rank(true); err != nil {
			return nil, err
		}
		return NewTabulated2D(m, r.Kind)
	case FitAPID:
		if err := rank(false); err != nil {
			return nil, err
		}
		return NewAnalytic(spec.Coeffs, r.Kind)
	}
	return unknownFit{tag: spec.Type}, nil
}

func dense(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty 2D coefficients", ErrInvalidReactionSpec)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: ragged 2D coefficients, row %d has %d values, want %d", ErrInvalidReactionSpec, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

func (r *Reaction) SetLogger(l logrus.FieldLogger) {
	r.log = l
}

func (r *Reaction) Fit() Fit {
	return r.fit
}

func (r *Reaction) Projectile() Projectile {
	return r.projectile
}

// ID is the database-qualified reaction name.
func (r *Reaction) ID() string {
	return r.Database + "_" + r.Name
}

// String renders the reaction as "database_name: r1 + 2*r2 => f1 + f2 ".
func (r *Reaction) String() string {
	var b strings.Builder
	b.WriteString(r.ID() + ": ")
	writeSide(&b, r.Reactants, r.RMult)
	b.WriteString("=> ")
	writeSide(&b, r.Fragments, r.FMult)
	return b.String()
}

func writeSide(b *strings.Builder, handles []string, mult []float64) {
	for i := range handles {
		if mult[i] != 1 {
			b.WriteString(strconv.FormatFloat(mult[i], 'g', -1, 64) + "*")
		}
		b.WriteString(handles[i] + " ")
		if i+1 != len(handles) {
			b.WriteString("+ ")
		}
	}
}

// State is the local plasma state a rate is evaluated at.
type State struct {
	Te     float64 // electron temperature [eV]
	Ti     float64 // ion temperature [eV]
	E      float64 // target particle energy [eV], valid if HasE
	Ne     float64 // electron density [cm^-3], valid if HasNe
	OmegaJ float64 // statistical weight of ADAS rates
	HasE   bool
	HasNe  bool
}

type Option func(*State)

func WithEnergy(e float64) Option {
	return func(s *State) { s.E, s.HasE = e, true }
}

func WithDensity(ne float64) Option {
	return func(s *State) { s.Ne, s.HasNe = ne, true }
}

// WithStatWeight overrides the default statistical weight of 1. A zero
// weight is not coerced and makes ADAS rates infinite.
func WithStatWeight(omegaj float64) Option {
	return func(s *State) { s.OmegaJ = omegaj }
}

// Rate returns the rate coefficient at electron temperature te and ion temperature ti [eV].
func (r *Reaction) Rate(te, ti float64, opts ...Option) (float64, error) {
	s := State{Te: te, Ti: ti, OmegaJ: 1}
	for _, opt := range opts {
		opt(&s)
	}
	return r.RateAt(s)
}

func (r *Reaction) RateAt(s State) (float64, error) {
	if r.projectile == ProjectileProton && !s.HasE && (r.Type == FitRate || r.Type == FitSigma) {
		return 0, fmt.Errorf("%w: target energy E required by proton impact reaction %s", ErrMissingArgument, r.ID())
	}
	k, err := r.fit.Evaluate(r.projectile.temperature(s), s)
	if errors.Is(err, ErrUnknownFitType) {
		r.log.WithFields(logrus.Fields{
			"reaction": r.Name,
			"database": r.Database,
			"type":     r.Tag,
		}).Warn("unknown reaction type, no rate produced")
	}
	return k, err
}
