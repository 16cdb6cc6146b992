package rollout

import (
	"testing"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func schema() field.Schema {
	return field.MustSchema(
		field.Spec{Name: field.O, Shape: []int{2}},
		field.Spec{Name: field.U, Shape: []int{1}},
		field.Spec{Name: field.R, Shape: []int{1}},
		field.Spec{Name: field.AG, Shape: []int{1}},
		field.Spec{Name: field.G, Shape: []int{1}},
		field.Spec{Name: "info_is_success", Shape: []int{1}},
	)
}

// step returns a TimeStep of episode b at time t whose values encode b
// and t
func step(b, t int) timestep.TimeStep {
	v := float64(10*b + t)
	s := timestep.New(timestep.Mid, -v, 1, mat.NewVecDense(2, []float64{v, -v}),
		t)
	return s.WithGoals(mat.NewVecDense(1, []float64{v}),
		mat.NewVecDense(1, []float64{100 + v})).
		WithInfo(map[string]float64{"is_success": float64(t % 2)})
}

func TestRecorderLayout(t *testing.T) {
	const batch, horizon = 2, 3
	r, err := NewRecorder(schema(), batch, horizon)
	require.NoError(t, err)
	require.NoError(t, r.Reset([]timestep.TimeStep{step(0, 0), step(1, 0)}))

	for i := 0; i < horizon; i++ {
		assert.False(t, r.Done())
		_, err := r.Episode()
		assert.Error(t, err)

		actions := []mat.Vector{
			mat.NewVecDense(1, []float64{float64(i)}),
			mat.NewVecDense(1, []float64{float64(-i)}),
		}
		next := []timestep.TimeStep{step(0, i+1), step(1, i+1)}
		require.NoError(t, r.Record(actions, next))
	}
	require.True(t, r.Done())

	ep, err := r.Episode()
	require.NoError(t, err)
	assert.Equal(t, []int{batch, horizon + 1, 2}, ep[field.O].Shape())
	assert.Equal(t, []int{batch, horizon + 1, 1}, ep[field.AG].Shape())
	assert.Equal(t, []int{batch, horizon, 1}, ep[field.U].Shape())
	assert.Equal(t, []int{batch, horizon, 1}, ep[field.G].Shape())

	for b := 0; b < batch; b++ {
		for i := 0; i <= horizon; i++ {
			v := float64(10*b + i)
			assert.Equal(t, v, ep[field.O].At(b, i, 0))
			assert.Equal(t, -v, ep[field.O].At(b, i, 1))
			assert.Equal(t, v, ep[field.AG].At(b, i, 0))
		}
		for i := 0; i < horizon; i++ {
			next := float64(10*b + i + 1)
			assert.Equal(t, -next, ep[field.R].At(b, i, 0))
			assert.Equal(t, 100+float64(10*b+i), ep[field.G].At(b, i, 0))
			assert.Equal(t, float64((i+1)%2),
				ep["info_is_success"].At(b, i, 0))
		}
	}
	assert.Equal(t, []float64{0, 1, 2}, ep[field.U].Row(0))
	assert.Equal(t, []float64{0, -1, -2}, ep[field.U].Row(1))

	// The returned episode is a copy
	ep[field.O].Data()[0] = 42
	again, err := r.Episode()
	require.NoError(t, err)
	assert.Equal(t, 0.0, again[field.O].Data()[0])

	a := []mat.Vector{mat.NewVecDense(1, nil), mat.NewVecDense(1, nil)}
	assert.Error(t, r.Record(a, []timestep.TimeStep{step(0, 4), step(1, 4)}))
}

func TestRecorderErrors(t *testing.T) {
	r, err := NewRecorder(schema(), 1, 2)
	require.NoError(t, err)

	a := []mat.Vector{mat.NewVecDense(1, nil)}
	assert.Error(t, r.Record(a, []timestep.TimeStep{step(0, 1)}))
	assert.Error(t, r.Reset([]timestep.TimeStep{step(0, 0), step(1, 0)}))
	require.NoError(t, r.Reset([]timestep.TimeStep{step(0, 0)}))

	wrong := []mat.Vector{mat.NewVecDense(2, nil)}
	assert.Error(t, r.Record(wrong, []timestep.TimeStep{step(0, 1)}))

	noInfo := step(0, 1).WithInfo(nil)
	assert.Error(t, r.Record(a, []timestep.TimeStep{noInfo}))
}

func TestNewRecorderValidation(t *testing.T) {
	_, err := NewRecorder(schema(), 0, 2)
	assert.Error(t, err)

	noGoal := field.MustSchema(
		field.Spec{Name: field.O, Shape: []int{2}},
		field.Spec{Name: field.U, Shape: []int{1}},
		field.Spec{Name: field.R, Shape: []int{1}},
		field.Spec{Name: field.AG, Shape: []int{1}},
	)
	_, err = NewRecorder(noGoal, 1, 2)
	assert.Error(t, err)

	derived := field.MustSchema(
		field.Spec{Name: field.O, Shape: []int{2}},
		field.Spec{Name: field.O2, Shape: []int{2}},
		field.Spec{Name: field.U, Shape: []int{1}},
		field.Spec{Name: field.R, Shape: []int{1}},
	)
	_, err = NewRecorder(derived, 1, 2)
	assert.Error(t, err)
}
