// Package zoraerr defines the error taxonomy of spec.md §7. Data-model
// violations (InvalidBaseImage, OutOfRegion) are always fatal. Solver and
// validator failures (NoFeasibleAssignment, Unbeatable, SolverTimeout) are
// retriable within the randomizer and only surface once retries are
// exhausted.
package zoraerr

import "fmt"

// InvalidBaseImage is returned when the supplied base image fails the
// header or length check (spec.md §6: 131,088 bytes, fixed 16-byte header).
type InvalidBaseImage struct {
	Reason string
}

func (e *InvalidBaseImage) Error() string {
	return fmt.Sprintf("invalid base image: %s", e.Reason)
}

// OutOfRegion is raised when a write targets an offset outside the
// declarative memory map. It indicates a programming error, never a user
// input problem.
type OutOfRegion struct {
	Offset int
}

func (e *OutOfRegion) Error() string {
	return fmt.Sprintf("write to undeclared region at offset 0x%X", e.Offset)
}

// NoFeasibleAssignment is raised by the item randomizer after exhausting its
// solver-retry budget. It carries the failing seed and flagstring so the
// caller can report a reproducible failure.
type NoFeasibleAssignment struct {
	Seed       uint64
	Flagstring string
	Attempts   int
}

func (e *NoFeasibleAssignment) Error() string {
	return fmt.Sprintf(
		"no feasible item assignment for seed %d (flags %q) after %d attempts",
		e.Seed, e.Flagstring, e.Attempts,
	)
}

// Unbeatable is raised by the validator when a generated world fails
// reachability. randomizer.Generate retries with a derived seed up to
// MaxValidatorRetries times and then returns the last Unbeatable itself.
type Unbeatable struct {
	Seed           uint64
	Flagstring     string
	MissingItems   []string
	UnreachedAreas []string
}

func (e *Unbeatable) Error() string {
	return fmt.Sprintf(
		"seed %d (flags %q) is not beatable: missing %v, unreached %v",
		e.Seed, e.Flagstring, e.MissingItems, e.UnreachedAreas,
	)
}

// SolverTimeout names a solver backend that exceeded its time limit. No
// backend returns it: a backend out of time reports failure through
// Solve's ok result, and the item randomizer reports exhausted retries as
// NoFeasibleAssignment.
type SolverTimeout struct {
	Backend string
}

func (e *SolverTimeout) Error() string {
	return fmt.Sprintf("solver backend %q exceeded its time limit", e.Backend)
}
