package reaction

import "strings"

type FitType int

const (
	FitUnknown     FitType = iota
	FitRate                // EIRENE log-log polynomial, 1D in T or 2D in (T, E)
	FitCoefficient         // constant spontaneous/radiative rate
	FitSigma               // Sawada cross section, thermally averaged
	FitADAS                // ADAS table over a temperature grid
	FitUE                  // UEDGE table over log-density/log-temperature indices
	FitAPID                // Janev/Stotler analytic ionization
)

var fitTags = map[string]FitType{
	"RATE":        FitRate,
	"COEFFICIENT": FitCoefficient,
	"SIGMA":       FitSigma,
	"ADAS":        FitADAS,
	"UE":          FitUE,
	"APID":        FitAPID,
}

func ParseFitType(tag string) FitType {
	return fitTags[tag]
}

func (f FitType) String() string {
	for tag, t := range fitTags {
		if t == f {
			return tag
		}
	}
	return "UNKNOWN"
}

// Kind carries the name-keyed special cases of a reaction.
type Kind int

const (
	KindGeneric    Kind = iota
	KindRadiated        // RECRAD, IONIZRAD: UE tables stored in J, rates wanted in eV
	KindIonization      // IONIZ_*: selects the APID ionization formula
)

func KindOf(name string) Kind {
	switch {
	case name == "RECRAD" || name == "IONIZRAD":
		return KindRadiated
	case strings.EqualFold(strings.SplitN(name, "_", 2)[0], "IONIZ"):
		return KindIonization
	}
	return KindGeneric
}

func (k Kind) String() string {
	switch k {
	case KindRadiated:
		return "radiated"
	case KindIonization:
		return "ionization"
	}
	return "generic"
}

// Projectile selects which temperature drives the reaction.
type Projectile int

const (
	ProjectileNone     Projectile = iota // spontaneous/radiative, temperature unused
	ProjectileElectron                   // uses Te
	ProjectileProton                     // uses Ti
)

func projectileOf(reactants []string) Projectile {
	var proton bool
	for _, r := range reactants {
		switch r {
		case "e":
			return ProjectileElectron
		case "p":
			proton = true
		}
	}
	if proton {
		return ProjectileProton
	}
	return ProjectileNone
}

func (p Projectile) temperature(s State) float64 {
	switch p {
	case ProjectileElectron:
		return s.Te
	case ProjectileProton:
		return s.Ti
	}
	return 0
}
