package reaction

import "errors"

var (
	// ErrInvalidReactionSpec marks a reaction record that cannot be turned into a Reaction.
	ErrInvalidReactionSpec = errors.New("reaction: invalid reaction spec")

	// ErrMissingArgument is returned when the plasma state lacks a value the fit needs
	// (target energy for proton impact or 2D fits, electron density for UE tables).
	ErrMissingArgument = errors.New("reaction: missing argument")

	// ErrMissingFitBranch is returned by APID reactions that are not ionizations.
	ErrMissingFitBranch = errors.New("reaction: no formula for this reaction kind")

	// ErrUnknownFitType is returned by reactions built from an unrecognized type tag.
	// It is not fatal: callers skip the reaction.
	ErrUnknownFitType = errors.New("reaction: unknown fit type")
)

// Skippable reports whether err means "no rate for this reaction" rather than a failure.
func Skippable(err error) bool {
	return errors.Is(err, ErrUnknownFitType) || errors.Is(err, ErrMissingFitBranch)
}
