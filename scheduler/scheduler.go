// Package scheduler converts per-customer call-volume requirements into an
// hour-by-hour agent schedule over a fixed 24-hour day. One run is a pure
// function of its input and options: no I/O, no retained state, and fully
// specified iteration orders so identical runs produce identical output.
package scheduler

import (
	"fmt"

	"call-scheduler/errors"
	"call-scheduler/models"
)

// Algorithm names accepted by Options.Algorithm.
const (
	AlgorithmGreedy = "greedy"
	AlgorithmShift  = "shift"
)

// Options configures one scheduling run.
type Options struct {
	// Utilization is the agent productive-time fraction; must be > 0.
	// Lower utilization requires more agents for the same call load.
	Utilization float64
	// Capacity is the per-hour agent ceiling. nil means uncapped: every
	// requirement is served in full.
	Capacity *int
	// Algorithm selects the capped allocation policy: AlgorithmGreedy
	// (default when empty) allocates strictly by priority per hour;
	// AlgorithmShift first moves overflow demand into spare hours within
	// each customer's own window. Ignored when Capacity is nil.
	Algorithm string
}

// GenerateSchedule computes the agent schedule and per-customer allocation
// reports for one day. Configuration and input-contract errors abort the run
// before any allocation; unmet demand under a capacity ceiling is a normal
// result, never an error.
func GenerateSchedule(data []models.CustomerRequirement, opts Options) (*models.Schedule, error) {
	switch opts.Algorithm {
	case "", AlgorithmGreedy, AlgorithmShift:
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownAlgorithm, opts.Algorithm)
	}
	if opts.Capacity != nil && *opts.Capacity < 0 {
		return nil, fmt.Errorf("capacity must be non-negative, got %d", *opts.Capacity)
	}

	ds, err := expandDemands(data, opts.Utilization)
	if err != nil {
		return nil, err
	}

	var moves []models.Redistribution
	if opts.Capacity != nil && opts.Algorithm == AlgorithmShift {
		moves = redistribute(ds, *opts.Capacity)
	}

	sched := allocate(ds, opts.Capacity)
	sched.Moves = moves
	return sched, nil
}
