// Package config loads the TOML description of a rate evaluation run.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wildstyl3r/crmrates/internal/reaction"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

var ErrConfig = errors.New("invalid config")

type Config struct {
	OutputDir     string
	Workers       int
	CrossSections string // LXCat file for the xsec command

	InputUnits  []string
	OutputUnits []string

	States    StateGrid
	Reactions []reaction.Spec
	Effective *EffectiveParameters
}

// StateGrid is the set of plasma states rates are tabulated at.
// Either Te or the TeFrom/TeTo/Points range is given.
type StateGrid struct {
	Te      []float64 // [eV]
	TeFrom  float64   // [eV]
	TeTo    float64   // [eV]
	Points  int
	TiRatio float64 // Ti = TiRatio * Te
	E       float64 // [eV], target energy for proton impact
	Ne      float64 // [cm^-3]
	OmegaJ  float64

	hasE, hasNe bool
}

// EffectiveParameters describe an effective rate over a vibrational
// distribution, either from per-level EIRENE 1D fits or from configured
// reactions, one per level.
type EffectiveParameters struct {
	Temperature float64   // vibrational temperature [K]
	Levels      []float64 // [cm^-1], D2 levels when empty
	FCTable     string    // Franck-Condon table, maps the population to the upper state
	Fits        [][]float64
	Reactions   []string
	Reference   []float64 // EIRENE 1D fit of the tabulated effective rate, for comparison
}

var defaultValues = map[string]any{
	"OutputDir":      ".",
	"States.Points":  50,
	"States.TiRatio": 1.,
	"States.OmegaJ":  1.,
}

var fieldsXor = map[string][]string{
	"States.Te":      {"States.TeFrom", "States.TeTo"},
	"Effective.Fits": {"Effective.Reactions"},
}

var fieldsAnd = map[string][]string{
	"States.TeFrom": {"States.TeTo"},
	"States.TeTo":   {"States.TeFrom"},
}

var valueUnits = map[string][]UnitElement{
	"States.Te":     {{Class: Temperature, Power: 1}},
	"States.TeFrom": {{Class: Temperature, Power: 1}},
	"States.TeTo":   {{Class: Temperature, Power: 1}},
	"States.Ne":     {{Class: Density, Power: 1}},
}

func isDefined(meta *toml.MetaData, field string) bool {
	return meta.IsDefined(strings.Split(field, ".")...)
}

func LoadConfig(configFileName string) (*Config, error) {
	var config Config
	meta, err := toml.DecodeFile(configFileName, &config)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown keys %v", ErrConfig, undecoded)
	}
	if err := config.unify(&meta); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) unify(meta *toml.MetaData) error {
	var unitsConflict []string
	c.InputUnits, unitsConflict = checkUnits(c.InputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("%w: found input unit conflict: %v", ErrConfig, unitsConflict)
	}
	if len(c.OutputUnits) == 0 {
		c.OutputUnits = c.InputUnits
	}
	c.OutputUnits, unitsConflict = checkUnits(c.OutputUnits)
	if len(unitsConflict) > 0 {
		return fmt.Errorf("%w: found output unit conflict: %v", ErrConfig, unitsConflict)
	}

	for field, alternatives := range fieldsXor {
		if !isDefined(meta, field) {
			continue
		}
		for _, alt := range alternatives {
			if isDefined(meta, alt) {
				return fmt.Errorf("%w: %s conflicts with %s", ErrConfig, field, alt)
			}
		}
	}
	for field, requirements := range fieldsAnd {
		if !isDefined(meta, field) {
			continue
		}
		for _, req := range requirements {
			if !isDefined(meta, req) {
				return fmt.Errorf("%w: %s requires %s", ErrConfig, field, req)
			}
		}
	}

	if !isDefined(meta, "OutputDir") {
		c.OutputDir = defaultValues["OutputDir"].(string)
	}
	if !isDefined(meta, "States.Points") {
		c.States.Points = defaultValues["States.Points"].(int)
	}
	if !isDefined(meta, "States.TiRatio") {
		c.States.TiRatio = defaultValues["States.TiRatio"].(float64)
	}
	if !isDefined(meta, "States.OmegaJ") {
		c.States.OmegaJ = defaultValues["States.OmegaJ"].(float64)
	}

	c.toInternal()

	if len(c.States.Te) == 0 {
		if !isDefined(meta, "States.TeFrom") {
			return fmt.Errorf("%w: no electron temperatures given", ErrConfig)
		}
		if c.States.TeFrom <= 0 || c.States.TeTo < c.States.TeFrom || c.States.Points < 1 {
			return fmt.Errorf("%w: bad temperature range [%g, %g] with %d points", ErrConfig, c.States.TeFrom, c.States.TeTo, c.States.Points)
		}
		c.States.Te = utils.LogSpace(c.States.TeFrom, c.States.TeTo, c.States.Points)
	}
	for _, te := range c.States.Te {
		if !(te > 0) {
			return fmt.Errorf("%w: electron temperature %g is not positive", ErrConfig, te)
		}
	}
	c.States.hasE = isDefined(meta, "States.E")
	c.States.hasNe = isDefined(meta, "States.Ne")

	if c.Effective != nil {
		if c.Effective.Temperature <= 0 {
			return fmt.Errorf("%w: vibrational temperature must be positive", ErrConfig)
		}
		if len(c.Effective.Fits) == 0 && len(c.Effective.Reactions) == 0 {
			return fmt.Errorf("%w: effective rate needs fits or reactions", ErrConfig)
		}
		for _, name := range c.Effective.Reactions {
			if !slices.ContainsFunc(c.Reactions, func(s reaction.Spec) bool { return s.Name == name }) {
				return fmt.Errorf("%w: effective rate refers to unknown reaction %q", ErrConfig, name)
			}
		}
	}
	return nil
}

func (c *Config) toInternal() {
	s := &c.States
	for i := range s.Te {
		s.Te[i] = Convert(s.Te[i], valueUnits["States.Te"], c.InputUnits, true)
	}
	s.TeFrom = Convert(s.TeFrom, valueUnits["States.TeFrom"], c.InputUnits, true)
	s.TeTo = Convert(s.TeTo, valueUnits["States.TeTo"], c.InputUnits, true)
	s.Ne = Convert(s.Ne, valueUnits["States.Ne"], c.InputUnits, true)
}

// States expands the grid into one plasma state per electron temperature.
func (g *StateGrid) States() []reaction.State {
	states := make([]reaction.State, len(g.Te))
	for i, te := range g.Te {
		states[i] = reaction.State{
			Te:     te,
			Ti:     g.TiRatio * te,
			E:      g.E,
			Ne:     g.Ne,
			OmegaJ: g.OmegaJ,
			HasE:   g.hasE,
			HasNe:  g.hasNe,
		}
	}
	return states
}

// Span is the smallest and largest electron temperature of the grid.
func (g *StateGrid) Span() (lo, hi float64) {
	return slices.Min(g.Te), slices.Max(g.Te)
}

// Temperature converts an internal temperature to the output unit.
func (c *Config) Temperature(te float64) float64 {
	return Convert(te, []UnitElement{{Class: Temperature, Power: 1}}, c.OutputUnits, false)
}

// Rate converts an internal rate coefficient to the output unit.
func (c *Config) Rate(k float64) float64 {
	return Convert(k, []UnitElement{{Class: Rate, Power: 1}}, c.OutputUnits, false)
}

// RateUnit is the output unit of rate coefficients.
func (c *Config) RateUnit() string {
	return *utils.Intersect(unitsInClass[Rate], c.OutputUnits)
}

// TemperatureUnit is the output unit of temperatures.
func (c *Config) TemperatureUnit() string {
	return *utils.Intersect(unitsInClass[Temperature], c.OutputUnits)
}
