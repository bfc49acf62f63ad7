package config

import (
	"github.com/wildstyl3r/crmrates/internal/constants"
	"github.com/wildstyl3r/crmrates/internal/utils"
)

// factors to the engine's internal units: eV, cm^-3, cm^3 s^-1
var unitToInternal = map[string]float64{
	"eV":    1,                     // [eV]
	"K":     constants.KBolzmannEV, // [eV]
	"cm-3":  1,                     // [cm^-3]
	"m-3":   1e-6,                  // [cm^-3]
	"cm3/s": 1,                     // [cm^3 s^-1]
	"m3/s":  1e6,                   // [cm^3 s^-1]
}

type UnitClass int

const (
	Temperature UnitClass = iota
	Density
	Rate
)

var unitsInClass = map[UnitClass][]string{
	Temperature: {"eV", "K"},
	Density:     {"cm-3", "m-3"},
	Rate:        {"cm3/s", "m3/s"},
}

var classesOfUnits = map[string]UnitClass{
	"eV":    Temperature,
	"K":     Temperature,
	"cm-3":  Density,
	"m-3":   Density,
	"cm3/s": Rate,
	"m3/s":  Rate,
}

var defaultUnits = []string{"eV", "cm-3", "cm3/s"}

type UnitElement = struct {
	Class UnitClass
	Power int
}

// checkUnits completes units with defaults for missing classes and reports
// unknown units and classes given more than once.
func checkUnits(units []string) (extended, conflicts []string) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			conflicts = append(conflicts, unit)
			continue
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string(nil), units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// Convert moves v between the given units and the internal ones:
// direct converts into internal units, !direct out of them.
func Convert(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for _, uc := range classes {
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		factor := unitToInternal[*unit]
		power := uc.Power
		if !direct {
			power = -power
		}
		for range utils.IntAbs(power) {
			if power > 0 {
				v *= factor
			} else {
				v /= factor
			}
		}
	}
	return v
}
