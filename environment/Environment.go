// Package environment outlines the interfaces needed to implement
// goal-conditioned environments that generate episodes for replay
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/goreplay/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() mat.Vector
}

// Ender determines when an episode ends. If the episode should end,
// End sets the step type of the TimeStep to timestep.Last.
type Ender interface {
	End(t *timestep.TimeStep) bool
}

// Environment implements a simulated goal-conditioned environment
type Environment interface {
	Reset() timestep.TimeStep // Resets between episodes
	Step(action mat.Vector) (timestep.TimeStep, bool)

	ObservationDim() int
	ActionDim() int
	GoalDim() int
}

// StepLimit is an Ender which ends episodes after a fixed number of
// steps
type StepLimit struct {
	steps int
}

// NewStepLimit returns a StepLimit ending episodes after steps steps
func NewStepLimit(steps int) StepLimit {
	return StepLimit{steps}
}

// End marks t as the last step of its episode once the step limit is
// reached
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number < s.steps {
		return false
	}
	t.SetStepType(timestep.Last)
	return true
}
