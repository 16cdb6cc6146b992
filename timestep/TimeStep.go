// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment. In
// goal-conditioned environments, AchievedGoal is the goal reached by
// the current state and DesiredGoal is the goal the agent is pursuing.
// Both are nil otherwise.
type TimeStep struct {
	stepType     StepType
	Reward       float64
	Discount     float64
	Observation  mat.Vector
	AchievedGoal mat.Vector
	DesiredGoal  mat.Vector
	Number       int

	// Info holds scalar diagnostics reported by the environment, e.g.
	// "is_success"
	Info map[string]float64
}

func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	return TimeStep{stepType: t, Reward: r, Discount: d, Observation: o,
		Number: n}
}

// WithGoals returns a copy of the TimeStep with the achieved and
// desired goals set
func (t TimeStep) WithGoals(achieved, desired mat.Vector) TimeStep {
	t.AchievedGoal = achieved
	t.DesiredGoal = desired
	return t
}

// WithInfo returns a copy of the TimeStep with its info set
func (t TimeStep) WithInfo(info map[string]float64) TimeStep {
	t.Info = info
	return t
}

// StepType returns the type of the TimeStep
func (t *TimeStep) StepType() StepType {
	return t.stepType
}

// SetStepType sets the type of the TimeStep
func (t *TimeStep) SetStepType(s StepType) {
	t.stepType = s
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// GoalConditioned returns whether the TimeStep carries goals
func (t *TimeStep) GoalConditioned() bool {
	return t.AchievedGoal != nil && t.DesiredGoal != nil
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Discount, t.Number)
}
