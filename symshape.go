// Copyright 2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package symshape infers tensor shapes of computation graphs at compile
// time, without running any tensor code.
//
// Operators describe their output shape as a small shape-compute program (a
// *graph.Graph taking one value per operand and returning a List[Int]).
// Given a call site whose operand shapes are only partially known, the
// Analyzer partially evaluates a private clone of that program: known
// operand facts are substituted in, the program is simplified over a fixed
// number of rounds, and whatever the output provably is becomes the result
// shape. Anything the analyzer cannot prove stays unknown; it never
// guesses.
//
// The three pieces:
//
//   - Registry maps operator schemas to their shape-compute programs.
//   - Analyzer partially evaluates one program against one call site.
//   - Registry.PropagateShapes drives the analyzer over a host graph,
//     rewriting the output shape of every call site it can resolve.
//
// Programs for the standard operator set live in the shapefuncs
// subpackage.
package symshape

import (
	"os"
	"strconv"
	"sync"

	"k8s.io/klog/v2"
)

// DefaultOptimizationRounds is how many simplification rounds an Analyzer
// runs before extracting the result shape. Each round substitutes the known
// operand facts and then simplifies; most programs settle in two or three
// rounds, and the analyzer stops as soon as a round changes nothing.
const DefaultOptimizationRounds = 6

// RoundsEnvVar is the name of the environment variable overriding the
// round budget process-wide, for experiments with deeply nested shape
// programs. Per-analysis overrides use WithRounds instead.
const RoundsEnvVar = "SYMSHAPE_ROUNDS"

var defaultRounds = sync.OnceValue(func() int {
	return roundsFromEnv(os.Getenv(RoundsEnvVar))
})

// roundsFromEnv interprets the RoundsEnvVar setting. Empty means the
// default; anything not a positive integer logs a warning and keeps the
// default.
func roundsFromEnv(setting string) int {
	if setting == "" {
		return DefaultOptimizationRounds
	}
	rounds, err := strconv.Atoi(setting)
	if err != nil || rounds < 1 {
		klog.Warningf("invalid %s=%q: want a positive integer, keeping the default of %d rounds",
			RoundsEnvVar, setting, DefaultOptimizationRounds)
		return DefaultOptimizationRounds
	}
	return rounds
}
