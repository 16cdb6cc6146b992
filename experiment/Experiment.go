// Package experiment implements functionality for running an experiment
// which fills a replay buffer with episodes and draws training batches
// from it
package experiment

import (
	"github.com/samuelfneumann/goreplay/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// The Run() method will run all epochs of the experiment. The
// RunEpoch() method will run a single epoch.
//
// In order to save data, Experiments use Trackers. Experiments send
// each batch of generated episodes to Trackers using the Tracker's
// Track() method. New Trackers can be registered with an Experiment
// through the constructor or through an Experiment's Register()
// function.
type Experiment interface {
	Run() error
	RunEpoch() error

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment.
	Register(t tracker.Tracker)
}

// Config represents a configuration of an Online experiment
type Config struct {
	Epochs          int `mapstructure:"epochs" json:"epochs"`
	BatchesPerEpoch int `mapstructure:"batches_per_epoch" json:"batches_per_epoch"`
	BatchSize       int `mapstructure:"batch_size" json:"batch_size"`
	DemoBatchSize   int `mapstructure:"demo_batch_size" json:"demo_batch_size"`
}
