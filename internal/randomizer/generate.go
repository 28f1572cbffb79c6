// Package randomizer wires the Data Table, Item Randomizer, Overworld
// Randomizer, and Validator into the single top-level Generate operation
// spec.md describes: seed and flags in, a validated Patch out. Grounded on
// the teacher's per-request pipeline shape (parse -> mutate state -> react
// to failure -> emit a result), generalized here into a retry loop instead
// of a single request/response cycle.
package randomizer

import (
	"fmt"

	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/config"
	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/itemrandomizer"
	"github.com/zora-rando/zora-core/internal/overworld"
	"github.com/zora-rando/zora-core/internal/patchengine"
	"github.com/zora-rando/zora-core/internal/progress"
	"github.com/zora-rando/zora-core/internal/romtable"
	"github.com/zora-rando/zora-core/internal/rng"
	"github.com/zora-rando/zora-core/internal/validator"
	"github.com/zora-rando/zora-core/internal/worldgraph"
	"github.com/zora-rando/zora-core/internal/zoraerr"
)

// Report accompanies a successful Patch with the diagnostics a caller (a CLI
// or the progress feed) surfaces on completion.
type Report struct {
	Patch      *patchengine.Patch
	Flagstring string
	Hash       uint64
	Code       [4]byte
	Attempts   int
}

// Generate runs one full generation: seed the vanilla world, shuffle items
// per cfg.Flags, optionally shuffle the start screen, validate reachability,
// and retry with a derived seed on Unbeatable up to
// cfg.MaxValidatorRetries times (spec.md §7's retry policy). broadcaster may
// be nil; a nil broadcaster silently drops every event.
func Generate(cfg config.Config, broadcaster *progress.Broadcaster) (*Report, error) {
	cfg.Flags.Sanitize(cfg.BaseImageIsVanilla)
	flagstring := flags.Encode(cfg.Flags)

	baseTable, err := romtable.New(cfg.BaseImage)
	if err != nil {
		return nil, err
	}
	graph := worldgraph.BuildStandardWorld()
	if err := SeedVanillaWorld(graph, baseTable); err != nil {
		return nil, err
	}

	maxRetries := cfg.MaxValidatorRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptSeed := deriveAttemptSeed(cfg.Seed, attempt)
		working := baseTable.Clone()

		publish(broadcaster, progress.Event{
			Kind: progress.EventSolverAttempt, Seed: cfg.Seed, Attempt: attempt,
			Detail: fmt.Sprintf("item randomizer, sub-seed %d", attemptSeed),
		})

		if err := itemrandomizer.Randomize(working, cfg.Flags, attemptSeed, itemrandomizer.Options{
			Backend:    cfg.SolverBackend,
			TimeLimit:  cfg.SolverTimeLimit,
			MaxRetries: cfg.MaxSolverRetries,
		}); err != nil {
			// NoFeasibleAssignment is not validator-retriable: a different
			// sub-seed for the permutation solver won't change the fact
			// that the active constraints have no solution at all.
			return nil, err
		}

		if cfg.Flags.Get("shuffle_start_screen") {
			r := rng.New(attemptSeed)
			terrain := allScreensSpawnable(worldgraph.NumOverworldScreens)
			if _, _, err := overworld.ShuffleStartScreen(working, r, terrain, worldgraph.NumOverworldScreens); err != nil {
				applog.WithSeed(cfg.Seed).WithField("attempt", attempt).Warn("start screen shuffle skipped: " + err.Error())
			}
		}

		result, verr := validator.Validate(graph, working, attemptSeed, flagstring, cfg.Flags)
		publish(broadcaster, progress.Event{
			Kind: progress.EventValidatorRound, Seed: cfg.Seed, Attempt: attempt,
			Detail: fmt.Sprintf("beatable=%v missing=%v", result.Beatable, result.MissingItems),
		})

		if verr == nil {
			return finalize(working, cfg.Seed, flagstring, attempt, broadcaster)
		}

		lastErr = verr
		publish(broadcaster, progress.Event{Kind: progress.EventRetry, Seed: cfg.Seed, Attempt: attempt, Detail: verr.Error()})
	}

	return nil, lastErr
}

func allScreensSpawnable(n int) map[int]overworld.ScreenTerrain {
	m := make(map[int]overworld.ScreenTerrain, n)
	for i := 0; i < n; i++ {
		m[i] = overworld.TerrainAllowsSpawn
	}
	return m
}

// finalize stamps the title-string/verification-code metadata every emitted
// image carries (spec.md §8 scenario S1) and drains the working table into a
// Patch. The verification code is derived from the patch's own hash, taken
// before the code is written in, then written into the title string and
// folded into the final patch (original_source/logic/randomizer.py: the
// hash is computed first, then the code bytes are added to the patch, never
// the other way around).
func finalize(table *romtable.Table, seed uint64, flagstring string, attempt int, broadcaster *progress.Broadcaster) (*Report, error) {
	preTitle := patchengine.New()
	for offset, b := range table.DrainWrites() {
		preTitle.Set(offset, b)
	}
	code := patchengine.VerificationCode(preTitle.Hash())

	if err := table.SetTitleString(code[:]); err != nil {
		return nil, err
	}

	patch := patchengine.New()
	for offset, b := range table.DrainWrites() {
		patch.Set(offset, b)
	}

	if bad := patch.ValidateAgainstMemoryMap(); bad != -1 {
		return nil, &zoraerr.OutOfRegion{Offset: bad}
	}

	publish(broadcaster, progress.Event{Kind: progress.EventDone, Seed: seed, Attempt: attempt, Detail: flagstring})
	applog.WithSeed(seed).WithFields(map[string]interface{}{
		"flagstring": flagstring, "attempt": attempt, "hash": patch.Hash(),
	}).Info("generation complete")

	return &Report{
		Patch:      patch,
		Flagstring: flagstring,
		Hash:       patch.Hash(),
		Code:       code,
		Attempts:   attempt + 1,
	}, nil
}

func publish(b *progress.Broadcaster, ev progress.Event) {
	if b != nil {
		b.Publish(ev)
	}
}

// deriveAttemptSeed mixes the run seed with the attempt number via
// SplitMix64, the same sub-seed derivation the solver backends use for
// their own retry loops (internal/solver/backend_backtracking.go).
func deriveAttemptSeed(seed uint64, attempt int) uint64 {
	z := seed + uint64(attempt)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
