// Package trackers implements Trackers of episode statistics
package trackers

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/field"
	"gonum.org/v1/gonum/floats"
)

// Return tracks and saves the episodic return in an experiment. For
// each episode tracked, the rewards over all its steps are summed.
//
// Note: rewards are tracked as stored in the episode batch. If rewards
// are later recomputed, e.g. by hindsight relabeling, this Tracker
// still tracks the rewards the environment returned.
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track tracks the return of each episode in the batch
func (r *Return) Track(episodes field.Batch) error {
	rewards, ok := episodes[field.R]
	if !ok {
		return fmt.Errorf("track: episodes hold no rewards")
	}
	for i := 0; i < rewards.Len(); i++ {
		r.episodeReturns = append(r.episodeReturns, floats.Sum(rewards.Row(i)))
	}
	return nil
}

// Returns returns a copy of the episodic returns tracked so far
func (r *Return) Returns() []float64 {
	return append([]float64(nil), r.episodeReturns...)
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return tracker.SaveData(r.filename, r.episodeReturns)
}
