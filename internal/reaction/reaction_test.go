package reaction

import (
	"bytes"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func electronImpact(name, typ string) Spec {
	return Spec{
		Name:     name,
		Database: "AMJUEL",
		Type:     typ,
		S: Stoichiometry{
			Reactants: []string{"e", "H2"},
			Fragments: []string{"e", "H", "H"},
			Energy:    []float64{-10.5, 0, 1, 4.5},
		},
	}
}

func TestStringOmitsUnitMultipliers(t *testing.T) {
	spec := electronImpact("2.2.5g", "COEFFICIENT")
	spec.S.Reactants = []string{"e"}
	spec.S.RMult = []float64{1}
	spec.S.Fragments = []string{"H", "H"}
	spec.S.FMult = []float64{1, 1}
	spec.Coeffs = []float64{3}
	r, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, "AMJUEL_2.2.5g: e => H + H ", r.String())
}

func TestStringRendersMultipliers(t *testing.T) {
	spec := electronImpact("2.2.9", "COEFFICIENT")
	spec.S.RMult = []float64{1, 2}
	spec.S.FMult = []float64{1, 1, 3}
	spec.Coeffs = []float64{3}
	r, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, "AMJUEL_2.2.9: e + 2*H2 => e + H + 3*H ", r.String())
}

func TestNewStripsSourcePrefix(t *testing.T) {
	spec := electronImpact("2.2.9", "COEFFICIENT")
	spec.S.Prefixed = true
	spec.S.Reactants = []string{"R1: e", "R2: H2"}
	spec.S.Fragments = []string{"F1: H2+"}
	spec.Coeffs = []float64{1}
	r, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, []string{"e", "H2"}, r.Reactants)
	assert.Equal(t, []string{"H2+"}, r.Fragments)
	assert.Equal(t, []float64{1}, r.FMult)
	assert.Equal(t, ProjectileElectron, r.Projectile())
}

func TestNewExtractsEnergyBalance(t *testing.T) {
	spec := electronImpact("2.2.9", "COEFFICIENT")
	spec.S.Energy = []float64{1, 2, 3, 4, 5}
	spec.Coeffs = []float64{1}
	r, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, EnergyBalance{Released: 1, Potential: 2, StatWeight: 4, Loss: 5}, r.Energy)
}

func TestNewRejectsMalformedSpecs(t *testing.T) {
	cases := map[string]func(*Spec){
		"multiplier arity": func(s *Spec) { s.S.RMult = []float64{1}; s.Coeffs = []float64{1} },
		"energy arity":     func(s *Spec) { s.S.Energy = []float64{1}; s.Coeffs = []float64{1} },
		"2D constant":      func(s *Spec) { s.Coeffs2D = [][]float64{{1, 2}, {3, 4}} },
		"1D UE": func(s *Spec) {
			s.Type = "UE"
			s.Coeffs = []float64{1, 2}
		},
		"ragged UE": func(s *Spec) {
			s.Type = "UE"
			s.Coeffs2D = [][]float64{{1, 2}, {3}}
		},
		"short RATE": func(s *Spec) {
			s.Type = "RATE"
			s.Coeffs = []float64{1, 2, 3}
		},
		"ADAS without grid": func(s *Spec) {
			s.Type = "ADAS"
			s.Coeffs = []float64{1, 2}
		},
		"ADAS decreasing grid": func(s *Spec) {
			s.Type = "ADAS"
			s.Tarr = []float64{2, 1}
			s.Coeffs = []float64{1, 2}
		},
		"SIGMA arity": func(s *Spec) {
			s.Type = "SIGMA"
			s.Coeffs = []float64{1, 2}
		},
		"APID low n arity": func(s *Spec) {
			s.Name = "IONIZ_1"
			s.Type = "APID"
			s.Coeffs = []float64{2, 0.1}
		},
	}
	for name, mutate := range cases {
		spec := electronImpact("x", "COEFFICIENT")
		mutate(&spec)
		_, err := New(spec)
		assert.ErrorIs(t, err, ErrInvalidReactionSpec, name)
	}
}

func TestCoefficientIsConstant(t *testing.T) {
	spec := electronImpact("2.2.9", "COEFFICIENT")
	spec.S.Reactants = []string{"H2(n=2)"}
	spec.Coeffs = []float64{4.7e8}
	r, err := New(spec)
	require.NoError(t, err)

	for _, te := range []float64{0, 0.1, 5, 1e4} {
		k, err := r.Rate(te, 2*te)
		require.NoError(t, err)
		assert.Equal(t, 4.7e8, k)
	}
	assert.Equal(t, ProjectileNone, r.Projectile())
}

func rate1D(t *testing.T, coeffs []float64) *Reaction {
	t.Helper()
	spec := electronImpact("2.1.5", "RATE")
	spec.Coeffs = coeffs
	r, err := New(spec)
	require.NoError(t, err)
	return r
}

func TestRatePolynomial(t *testing.T) {
	// ln k = ln T
	r := rate1D(t, []float64{0, 1, 0, 0, 0, 0, 0, 0, 0})
	k, err := r.Rate(2, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, 2., k, 1e-12)

	// ln k = -3 + 0.5 ln T^2
	r = rate1D(t, []float64{-3, 0, 0.5, 0, 0, 0, 0, 0, 0})
	k, err = r.Rate(10, 0)
	require.NoError(t, err)
	lt := math.Log(10)
	assert.InEpsilon(t, math.Exp(-3+0.5*lt*lt), k, 1e-12)
}

func TestRateRampsBelowFloor(t *testing.T) {
	r := rate1D(t, []float64{-20, 3, -1, 0.1, 0, 0, 0, 0, 0})
	atFloor, err := r.Rate(0.5, 0)
	require.NoError(t, err)
	quarter, err := r.Rate(0.25, 0)
	require.NoError(t, err)
	assert.Equal(t, atFloor, 2*quarter)

	for _, te := range []float64{0.01, 0.1, 0.3, 0.49} {
		k, err := r.Rate(te, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, atFloor/0.5, k/te, 1e-12)
	}
}

func TestRateUsesIonTemperatureForProtons(t *testing.T) {
	spec := electronImpact("3.2.3", "RATE")
	spec.S.Reactants = []string{"p", "H2"}
	spec.Coeffs = []float64{0, 1, 0, 0, 0, 0, 0, 0, 0}
	r, err := New(spec)
	require.NoError(t, err)

	_, err = r.Rate(1, 3)
	assert.ErrorIs(t, err, ErrMissingArgument)

	k, err := r.Rate(1, 3, WithEnergy(0.1))
	require.NoError(t, err)
	assert.InEpsilon(t, 3., k, 1e-12)
}

func TestRate2D(t *testing.T) {
	spec := electronImpact("3.2.3", "RATE")
	spec.S.Reactants = []string{"p", "H2"}
	c := make([][]float64, 9)
	for i := range c {
		c[i] = make([]float64, 9)
	}
	c[0][0] = -1
	c[1][1] = 1
	spec.Coeffs2D = c
	r, err := New(spec)
	require.NoError(t, err)

	k, err := r.Rate(1, 4, WithEnergy(2))
	require.NoError(t, err)
	assert.InEpsilon(t, math.Exp(-1+math.Log(4)*math.Log(2)), k, 1e-12)

	_, err = r.Fit().Evaluate(4, State{})
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func adas(t *testing.T) *Reaction {
	t.Helper()
	spec := electronImpact("EXC_1_2", "ADAS")
	spec.Tarr = []float64{1, 2, 5, 10, 20}
	spec.Coeffs = []float64{0.3, 0.5, 0.8, 0.9, 1.1}
	r, err := New(spec)
	require.NoError(t, err)
	return r
}

func TestADASFormula(t *testing.T) {
	r := adas(t)
	k, err := r.Rate(1, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, 2.1716e-8*math.Sqrt(13.6048)*0.3, k, 1e-12)

	k, err = r.Rate(3.5, 0, WithStatWeight(2))
	require.NoError(t, err)
	assert.InEpsilon(t, 2.1716e-8/2*math.Sqrt(13.6048/3.5)*0.65, k, 1e-12)
}

func TestADASZeroStatWeight(t *testing.T) {
	r := adas(t)
	k, err := r.Rate(3.5, 0, WithStatWeight(0))
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1))

	k, err = r.RateAt(State{Te: 3.5})
	require.NoError(t, err)
	assert.True(t, math.IsInf(k, 1))
}

func TestADASExtrapolation(t *testing.T) {
	r := adas(t)
	first, err := r.Rate(1, 0)
	require.NoError(t, err)
	for _, te := range []float64{0.05, 0.5, 0.99} {
		k, err := r.Rate(te, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, first*te/1, k, 1e-12)
	}

	last, err := r.Rate(20, 0)
	require.NoError(t, err)
	for _, te := range []float64{20.5, 100, 1e6} {
		k, err := r.Rate(te, 0)
		require.NoError(t, err)
		assert.Equal(t, last, k)
	}
}

func ue(t *testing.T, name string, fill func(i, j int) float64) *Reaction {
	t.Helper()
	spec := electronImpact(name, "UE")
	c := make([][]float64, 61)
	for i := range c {
		c[i] = make([]float64, 16)
		for j := range c[i] {
			c[i][j] = fill(i, j)
		}
	}
	spec.Coeffs2D = c
	r, err := New(spec)
	require.NoError(t, err)
	return r
}

func TestUEZeroTable(t *testing.T) {
	r := ue(t, "IONIZ", func(int, int) float64 { return 0 })
	k, err := r.Rate(1, 1, WithDensity(1e16))
	require.NoError(t, err)
	assert.Equal(t, 0., k)

	for _, te := range []float64{0, 1e-5, 1e6} {
		for _, ne := range []float64{0, 1, 1e30} {
			k, err := r.Rate(te, te, WithDensity(ne))
			require.NoError(t, err)
			assert.Equal(t, 0., k)
		}
	}
}

func TestUEIndices(t *testing.T) {
	jt, jn := Indices(1, 1e16)
	assert.InDelta(t, 12., jt, 1e-12)
	assert.InDelta(t, 12., jn, 1e-12)

	jt, jn = Indices(0, 0)
	assert.Equal(t, 0., jt)
	assert.Equal(t, 0., jn)

	jt, jn = Indices(1e9, 1e40)
	assert.Equal(t, 60., jt)
	assert.Equal(t, 15., jn)
}

func TestUEMultiplier(t *testing.T) {
	table := func(i, j int) float64 { return float64(i) + 100*float64(j) }

	plain := ue(t, "IONIZ", table)
	k, err := plain.Rate(1, 1, WithDensity(1e16))
	require.NoError(t, err)
	assert.InDelta(t, 12.+1200, k, 1e-9)

	for _, name := range []string{"RECRAD", "IONIZRAD"} {
		rad := ue(t, name, table)
		kr, err := rad.Rate(1, 1, WithDensity(1e16))
		require.NoError(t, err)
		assert.Equal(t, k*6.242e11, kr, name)
	}

	_, err = plain.Rate(1, 1)
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestSigmaMatchesClosedForm(t *testing.T) {
	// gamma = 0, nu = 1: sigma = C (1 - W/E) above threshold
	coeffs := []float64{12, 1e-20, 0.5, 0.75, 10, 0, 1}
	spec := electronImpact("2.2.12", "SIGMA")
	spec.Coeffs = coeffs
	r, err := New(spec)
	require.NoError(t, err)

	const ev, me = 1.602e-19, 9.10938356e-31
	C := coeffs[1] * coeffs[2] / (coeffs[4] * coeffs[4]) * math.Pow(coeffs[4]/coeffs[0], coeffs[3])
	for _, te := range []float64{1, 5, 30} {
		x0 := coeffs[0] / te
		integral := C * ((x0+1)*math.Exp(-x0) - coeffs[4]/te*math.Exp(-x0))
		want := 4 / math.Sqrt(math.Pi) * math.Sqrt(te*ev/(2*me)) * integral

		k, err := r.Rate(te, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, want, k, 1e-8, "Te=%v", te)
	}

	k, err := r.Rate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0., k)
}

func TestSigmaFunction(t *testing.T) {
	c, err := NewCrossSection([]float64{10, 2, 3, 1, 5, 2, 0.5})
	require.NoError(t, err)

	assert.Equal(t, 0., c.Sigma(9.99))
	E := 20.
	psi := math.Pow(1-5/E, 0.5) + (1 - math.Pow(5/E, 2))
	assert.InEpsilon(t, 2*(3./25)*(5./10)*psi, c.Sigma(E), 1e-12)
	assert.Greater(t, c.ThresholdSpeed(), 0.)
}

func TestSigmaProtonImpactNeedsEnergy(t *testing.T) {
	spec := electronImpact("x", "SIGMA")
	spec.S.Reactants = []string{"p", "H2"}
	spec.Coeffs = []float64{12, 1e-20, 0.5, 0.75, 10, 0, 1}
	r, err := New(spec)
	require.NoError(t, err)

	_, err = r.Rate(5, 5)
	assert.ErrorIs(t, err, ErrMissingArgument)
	_, err = r.Rate(5, 5, WithEnergy(1))
	assert.NoError(t, err)
}

func TestAPIDIonization(t *testing.T) {
	spec := electronImpact("IONIZ_1", "APID")
	spec.Coeffs = []float64{1, 0.18450, -0.032226, -0.034539, 1.4003, -2.8115, 2.2986}
	r, err := New(spec)
	require.NoError(t, err)
	assert.Equal(t, KindIonization, r.Kind)

	k, err := r.Rate(10, 0)
	require.NoError(t, err)
	assert.InEpsilon(t, 4.893035054774742e-09, k, 1e-9)

	for n, want := range map[float64][2]float64{
		4: {5.0, 1.4485897986204726e-06},
		5: {0.5, 4.229766222264084e-07},
	} {
		spec.Coeffs = []float64{n}
		r, err := New(spec)
		require.NoError(t, err)
		k, err := r.Rate(want[0], 0)
		require.NoError(t, err)
		assert.InEpsilon(t, want[1], k, 1e-9, "n=%v", n)
	}
}

func TestAPIDWithoutIonizationBranch(t *testing.T) {
	spec := electronImpact("EXC_1_2", "APID")
	spec.Coeffs = []float64{5}
	r, err := New(spec)
	require.NoError(t, err)

	_, err = r.Rate(10, 0)
	assert.ErrorIs(t, err, ErrMissingFitBranch)
	assert.True(t, Skippable(err))
}

func TestUnknownTypeIsDiagnosedNotFatal(t *testing.T) {
	spec := electronImpact("2.1.5", "POLYFIT")
	spec.Coeffs = []float64{1}
	r, err := New(spec)
	require.NoError(t, err)
	assert.Equal(t, FitUnknown, r.Type)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	r.SetLogger(logger)

	_, err = r.Rate(1, 1)
	assert.ErrorIs(t, err, ErrUnknownFitType)
	assert.True(t, Skippable(err))
	assert.Contains(t, buf.String(), "POLYFIT")
	assert.Contains(t, buf.String(), "unknown reaction type")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRadiated, KindOf("RECRAD"))
	assert.Equal(t, KindRadiated, KindOf("IONIZRAD"))
	assert.Equal(t, KindIonization, KindOf("IONIZ"))
	assert.Equal(t, KindIonization, KindOf("ioniz_2"))
	assert.Equal(t, KindGeneric, KindOf("IONIZE_2"))
	assert.Equal(t, KindGeneric, KindOf("2.1.5"))
}

func TestParseFitType(t *testing.T) {
	for _, tag := range []string{"RATE", "COEFFICIENT", "SIGMA", "ADAS", "UE", "APID"} {
		ft := ParseFitType(tag)
		assert.NotEqual(t, FitUnknown, ft, tag)
		assert.Equal(t, tag, ft.String())
	}
	assert.Equal(t, FitUnknown, ParseFitType("rate"))
}
