package reward

import (
	"testing"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goals(t *testing.T) (*field.Array, *field.Array) {
	ag, err := field.FromRows([]int{2}, []float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	g, err := field.FromRows([]int{2}, []float64{0, 0.01}, []float64{0, 0})
	require.NoError(t, err)
	return ag, g
}

func TestGoalDistanceSparse(t *testing.T) {
	ag, g := goals(t)
	r, err := GoalDistance(0.05, true)(ag, g, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, r.Shape())
	assert.Equal(t, []float64{0, -1}, r.Data())
}

func TestGoalDistanceDense(t *testing.T) {
	ag, g := goals(t)
	r, err := GoalDistance(0.05, false)(ag, g, nil)
	require.NoError(t, err)
	assert.InDelta(t, -0.01, r.Data()[0], 1e-12)
	assert.InDelta(t, -5.0, r.Data()[1], 1e-12)
}

func TestGoalDistanceShapeMismatch(t *testing.T) {
	ag, _ := goals(t)
	_, err := GoalDistance(0.05, true)(ag, field.Zeros(2, 3), nil)
	assert.Error(t, err)
}

func TestScaled(t *testing.T) {
	ag, g := goals(t)
	fn, err := Scaled(GoalDistance(0.05, true), 1, 2)
	require.NoError(t, err)

	r, err := fn(ag, g, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0}, r.Data())

	_, err = Scaled(GoalDistance(0.05, true), 1, 0)
	assert.Error(t, err)
}

func TestFromInfo(t *testing.T) {
	ag, g := goals(t)
	success, _ := field.FromRows(nil, []float64{1}, []float64{0})
	info := map[string]*field.Array{"is_success": success}

	r, err := FromInfo("is_success", 0, -1)(ag, g, info)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, -1}, r.Data())

	_, err = FromInfo("missing", 0, -1)(ag, g, info)
	assert.Error(t, err)
}
