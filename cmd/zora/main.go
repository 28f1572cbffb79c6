// Command zora is the CLI surface named as an external collaborator by
// spec.md §6: just enough argument parsing to invoke randomizer.Generate and
// map its errors to the documented exit codes. Only the standard library
// flag package is used — no CLI framework is adopted (DESIGN.md justifies
// why none of the example pack's frameworks earns a home here).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zora-rando/zora-core/internal/applog"
	"github.com/zora-rando/zora-core/internal/config"
	"github.com/zora-rando/zora-core/internal/flags"
	"github.com/zora-rando/zora-core/internal/randomizer"
	"github.com/zora-rando/zora-core/internal/version"
	"github.com/zora-rando/zora-core/internal/zoraerr"
)

const (
	exitSuccess           = 0
	exitInvalidFlags      = 2
	exitNoFeasibleAssign  = 3
	exitValidatorRejected = 4
	exitIOError           = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("zora", flag.ContinueOnError)
	seed := fs.Uint64("seed", 1, "run seed")
	flagstring := fs.String("flagstring", "BBBBB", "encoded flag configuration")
	inputFile := fs.String("input-file", "", "path to the base image")
	outputDir := fs.String("output-dir", ".", "directory the patched image is written into")
	loglevel := fs.String("loglevel", "info", "log level (passed through to ZORA_LOG_LEVEL)")
	showVersion := fs.Bool("version", false, "print build version and exit")

	if err := fs.Parse(args); err != nil {
		return exitInvalidFlags
	}
	if *showVersion {
		fmt.Println(version.String())
		return exitSuccess
	}

	os.Setenv("ZORA_LOG_LEVEL", *loglevel)
	applog.Init()

	flagSet, ok := flags.Decode(*flagstring)
	if !ok {
		applog.L().WithField("flagstring", *flagstring).Error("invalid flagstring")
		return exitInvalidFlags
	}

	if *inputFile == "" {
		applog.L().Error("--input-file is required")
		return exitInvalidFlags
	}
	baseImage, err := os.ReadFile(*inputFile)
	if err != nil {
		applog.L().WithField("path", *inputFile).Error("failed to read base image: " + err.Error())
		return exitIOError
	}

	cfg := config.Default(*seed, flagSet, baseImage)
	report, err := randomizer.Generate(cfg, nil)
	if err != nil {
		return exitCodeFor(err)
	}

	out := report.Patch.ApplyTo(baseImage)
	outPath := filepath.Join(*outputDir, fmt.Sprintf("zora_%d_%s.dat", *seed, report.Flagstring))
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		applog.L().Error("failed to create output directory: " + err.Error())
		return exitIOError
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		applog.L().Error("failed to write patched image: " + err.Error())
		return exitIOError
	}

	applog.WithSeed(*seed).WithFields(map[string]interface{}{
		"output": outPath, "hash": report.Hash, "attempts": report.Attempts,
	}).Info("generation complete")
	return exitSuccess
}

func exitCodeFor(err error) int {
	var invalid *zoraerr.InvalidBaseImage
	var noFeasible *zoraerr.NoFeasibleAssignment
	var unbeatable *zoraerr.Unbeatable
	var outOfRegion *zoraerr.OutOfRegion

	switch {
	case errors.As(err, &invalid):
		applog.L().Error(err.Error())
		return exitInvalidFlags
	case errors.As(err, &noFeasible):
		applog.L().Error(err.Error())
		return exitNoFeasibleAssign
	case errors.As(err, &unbeatable):
		applog.L().Error(err.Error())
		return exitValidatorRejected
	case errors.As(err, &outOfRegion):
		applog.L().Error(err.Error())
		return exitIOError
	default:
		applog.L().Error("generation failed: " + err.Error())
		return exitIOError
	}
}
