package environment

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/reward"
	"github.com/samuelfneumann/goreplay/timestep"
	"github.com/samuelfneumann/goreplay/utils/floatutils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// SuccessInfo is the info key reporting whether a goal was reached
	SuccessInfo = "is_success"

	// MaxStep is the largest distance a point may move along any
	// dimension in a single step
	MaxStep = 0.1
)

// bounds holds the positions reachable by the point
var bounds = r1.Interval{Min: -1, Max: 1}

// PointReach implements a goal-conditioned environment where a point
// in [-1, 1]^dim must be moved to a goal position. Observations and
// achieved goals are the position of the point. Each episode lasts a
// fixed number of steps.
type PointReach struct {
	dim       int
	threshold float64

	position *mat.VecDense
	goal     *mat.VecDense
	number   int

	starter     Starter
	goalStarter Starter
	ender       Ender
	rewardFn    reward.Func
}

// NewPointReach returns a new PointReach environment of dim dimensions
// whose episodes last horizon steps. A goal is reached when the point
// is within threshold of it, and the sparse reward is -1 until then.
func NewPointReach(dim, horizon int, threshold float64,
	seed uint64) (*PointReach, timestep.TimeStep, error) {
	if dim < 1 || horizon < 1 || threshold <= 0 {
		return nil, timestep.TimeStep{}, fmt.Errorf("newPointReach: invalid "+
			"arguments\n\twant(dim >= 1, horizon >= 1, threshold > 0)"+
			"\n\thave(%v, %v, %v)", dim, horizon, threshold)
	}

	p := &PointReach{
		dim:         dim,
		threshold:   threshold,
		starter:     NewUniformStarter(Box(bounds, dim), seed),
		goalStarter: NewUniformStarter(Box(bounds, dim), seed+1),
		ender:       NewStepLimit(horizon),
		rewardFn:    reward.GoalDistance(threshold, true),
	}
	return p, p.Reset(), nil
}

// ObservationDim returns the length of observations
func (p *PointReach) ObservationDim() int { return p.dim }

// ActionDim returns the length of actions
func (p *PointReach) ActionDim() int { return p.dim }

// GoalDim returns the length of goals
func (p *PointReach) GoalDim() int { return p.dim }

// RewardFunc returns the reward function of the environment
func (p *PointReach) RewardFunc() reward.Func {
	return p.rewardFn
}

// Reset resets the environment to a new starting position and goal
func (p *PointReach) Reset() timestep.TimeStep {
	p.position = mat.VecDenseCopyOf(p.starter.Start())
	p.goal = mat.VecDenseCopyOf(p.goalStarter.Start())
	p.number = 0

	step := timestep.New(timestep.First, 0, 1, p.observation(), p.number)
	return step.WithGoals(p.observation(), mat.VecDenseCopyOf(p.goal)).
		WithInfo(p.info())
}

// Step moves the point by action, clipped to MaxStep along each
// dimension, and returns the next TimeStep and whether the episode
// has ended
func (p *PointReach) Step(action mat.Vector) (timestep.TimeStep, bool) {
	if action.Len() != p.dim {
		panic(fmt.Sprintf("step: invalid action length \n\twant(%v)"+
			"\n\thave(%v)", p.dim, action.Len()))
	}

	for i := 0; i < p.dim; i++ {
		a := floatutils.Clip(action.AtVec(i), -MaxStep, MaxStep)
		p.position.SetVec(i, floatutils.ClipInterval(p.position.AtVec(i)+a,
			bounds))
	}
	p.number++

	r, err := p.rewardFn(p.goalArray(p.position), p.goalArray(p.goal), nil)
	if err != nil {
		panic(fmt.Sprintf("step: %v", err))
	}

	step := timestep.New(timestep.Mid, r.Data()[0], 1, p.observation(),
		p.number)
	step = step.WithGoals(p.observation(), mat.VecDenseCopyOf(p.goal)).
		WithInfo(p.info())
	last := p.ender.End(&step)
	return step, last
}

// observation returns a copy of the position of the point
func (p *PointReach) observation() *mat.VecDense {
	return mat.VecDenseCopyOf(p.position)
}

// info returns the diagnostics of the current state
func (p *PointReach) info() map[string]float64 {
	success := 0.0
	if floats.Distance(p.position.RawVector().Data, p.goal.RawVector().Data,
		2) <= p.threshold {
		success = 1
	}
	return map[string]float64{SuccessInfo: success}
}

// goalArray returns v as a single-record Array
func (p *PointReach) goalArray(v *mat.VecDense) *field.Array {
	a := field.Zeros(1, p.dim)
	for i := 0; i < p.dim; i++ {
		a.Data()[i] = v.AtVec(i)
	}
	return a
}
