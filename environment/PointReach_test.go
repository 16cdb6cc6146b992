package environment

import (
	"testing"

	"github.com/samuelfneumann/goreplay/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestPointReachEpisode(t *testing.T) {
	env, first, err := NewPointReach(2, 4, 0.05, 1)
	require.NoError(t, err)
	assert.True(t, first.First())
	assert.True(t, first.GoalConditioned())
	assert.Equal(t, 0, first.Number)

	for i := 0; i < 3; i++ {
		step, last := env.Step(mat.NewVecDense(2, nil))
		assert.False(t, last)
		assert.True(t, step.Mid())
	}
	step, last := env.Step(mat.NewVecDense(2, nil))
	assert.True(t, last)
	assert.True(t, step.Last())
	assert.Equal(t, 4, step.Number)
}

func TestPointReachClipsActions(t *testing.T) {
	env, first, err := NewPointReach(2, 10, 0.05, 3)
	require.NoError(t, err)

	step, _ := env.Step(mat.NewVecDense(2, []float64{5, -5}))
	for i := 0; i < 2; i++ {
		want := first.Observation.AtVec(i) + []float64{MaxStep, -MaxStep}[i]
		if want > 1 {
			want = 1
		} else if want < -1 {
			want = -1
		}
		assert.InDelta(t, want, step.Observation.AtVec(i), 1e-12)
		assert.Equal(t, step.Observation.AtVec(i), step.AchievedGoal.AtVec(i))
	}
	assert.True(t, mat.Equal(first.DesiredGoal, step.DesiredGoal))
}

func TestPointReachRewardsSuccess(t *testing.T) {
	env, first, err := NewPointReach(1, 100, 0.05, 5)
	require.NoError(t, err)

	current := first
	for i := 0; i < 100; i++ {
		diff := current.DesiredGoal.AtVec(0) - current.AchievedGoal.AtVec(0)
		var last bool
		current, last = env.Step(mat.NewVecDense(1, []float64{diff}))
		if current.Info[SuccessInfo] == 1 {
			assert.Equal(t, 0.0, current.Reward)
			return
		}
		assert.Equal(t, -1.0, current.Reward)
		require.False(t, last)
	}
	t.Fatal("goal never reached")
}

func TestPointReachDeterministic(t *testing.T) {
	_, a, err := NewPointReach(3, 5, 0.05, 9)
	require.NoError(t, err)
	_, b, err := NewPointReach(3, 5, 0.05, 9)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a.Observation, b.Observation))
	assert.True(t, mat.Equal(a.DesiredGoal, b.DesiredGoal))
}

func TestNewPointReachValidation(t *testing.T) {
	_, _, err := NewPointReach(0, 5, 0.05, 0)
	assert.Error(t, err)
	_, _, err = NewPointReach(2, 0, 0.05, 0)
	assert.Error(t, err)
}

func TestStepLimit(t *testing.T) {
	s := NewStepLimit(3)
	step := timestep.New(timestep.Mid, 0, 1, nil, 2)
	assert.False(t, s.End(&step))
	step.Number = 3
	assert.True(t, s.End(&step))
	assert.True(t, step.Last())
}
