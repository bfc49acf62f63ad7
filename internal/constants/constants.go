package constants

const KBolzmannEV float64 = 8.617333262e-5     // [eV K^-1]
const ElectronCharge = 1.602176634e-19         // C
const ElectornMass float64 = 9.1093837139e-31  // [kg]
const HydrogenAtomMass float64 = 1.6735575e-27 // [kg]
const RydbergEnergy float64 = 13.6             // [eV]
