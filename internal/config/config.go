// Package config holds the run configuration for a single generation,
// generalizing the teacher's engine.Config/NewConfig "master-seed-derives-
// everything" idea to the randomizer's needs (SPEC_FULL.md AMBIENT STACK).
package config

import (
	"time"

	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/solver"
)

// Config parameterizes one call to randomizer.Generate. No environment
// variable is consulted for the seed itself — only applog's logging
// configuration reads the environment.
type Config struct {
	Seed                uint64
	Flags               *flags.Set
	BaseImage           []byte
	BaseImageIsVanilla  bool
	SolverBackend       solver.Backend
	SolverTimeLimit     time.Duration
	MaxValidatorRetries int
	MaxSolverRetries    int
}

// Default returns a Config with the production defaults spec.md §4.6
// documents: Backend C (rejection sampling) as the default backend, and 3
// solver retries before NoFeasibleAssignment surfaces.
func Default(seed uint64, flagSet *flags.Set, baseImage []byte) Config {
	return Config{
		Seed:                seed,
		Flags:               flagSet,
		BaseImage:           baseImage,
		BaseImageIsVanilla:  true,
		SolverBackend:       solver.BackendRejectionSampling,
		SolverTimeLimit:     10 * time.Second,
		MaxValidatorRetries: 3,
		MaxSolverRetries:    3,
	}
}
