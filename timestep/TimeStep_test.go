package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestTimeStep(t *testing.T) {
	o := mat.NewVecDense(2, []float64{1, 2})
	step := New(First, 0, 1, o, 0)
	assert.True(t, step.First())
	assert.False(t, step.GoalConditioned())
	assert.Equal(t, "First", step.StepType().String())

	g := mat.NewVecDense(1, []float64{3})
	goal := step.WithGoals(g, g).WithInfo(map[string]float64{"is_success": 1})
	assert.True(t, goal.GoalConditioned())
	assert.Equal(t, 1.0, goal.Info["is_success"])
	assert.Nil(t, step.Info)

	last := New(Last, -1, 0, o, 5)
	assert.True(t, last.Last())
	assert.Equal(t, "Last", last.StepType().String())
	assert.Equal(t, "TimeStep | Type: Last  |  Reward:  -1.00  |  "+
		"Discount: 0.00  |  Step Number:  5", last.String())
}
