package neat

import "errors"

var (
	// ErrNoEnabledGene is returned by mutations that need an enabled gene to act on.
	ErrNoEnabledGene = errors.New("genome has no enabled gene")
	// ErrEmptyPool is returned by cursor operations on a population without species.
	ErrEmptyPool = errors.New("population has no species")
	// ErrEmptySpecies is returned when a species without members is addressed.
	ErrEmptySpecies = errors.New("species has no members")
	// ErrInputSize is returned when an input vector does not match the input node count.
	ErrInputSize = errors.New("input size mismatch")
)
