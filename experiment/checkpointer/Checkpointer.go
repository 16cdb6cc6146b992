// Package checkpointer implements checkpointing of replay buffers
// during an experiment
package checkpointer

import ts "github.com/samuelfneumann/goreplay/timestep"

// Dumper is an object that can be saved to a file, e.g. an
// expreplay.Buffer
type Dumper interface {
	Dump(path string) error
}

// Checkpointer checkpoints/saves Dumpers based on timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
