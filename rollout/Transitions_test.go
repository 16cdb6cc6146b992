package rollout

import (
	"testing"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTransitions(t *testing.T) {
	const batch, horizon = 2, 3
	r, err := NewRecorder(schema(), batch, horizon)
	require.NoError(t, err)
	require.NoError(t, r.Reset([]timestep.TimeStep{step(0, 0), step(1, 0)}))
	for i := 0; i < horizon; i++ {
		actions := []mat.Vector{mat.NewVecDense(1, nil), mat.NewVecDense(1, nil)}
		require.NoError(t, r.Record(actions,
			[]timestep.TimeStep{step(0, i+1), step(1, i+1)}))
	}
	ep, err := r.Episode()
	require.NoError(t, err)

	tr, err := Transitions(ep, horizon)
	require.NoError(t, err)
	n, err := tr.Len()
	require.NoError(t, err)
	assert.Equal(t, batch*horizon, n)
	assert.ElementsMatch(t, []string{field.O, field.O2, field.U, field.R,
		field.AG, field.AG2, field.G, field.G2, field.Done,
		"info_is_success"}, tr.Names())

	for b := 0; b < batch; b++ {
		for i := 0; i < horizon; i++ {
			row := b*horizon + i
			v := float64(10*b + i)
			assert.Equal(t, []float64{v, -v}, tr[field.O].Row(row))
			assert.Equal(t, []float64{v + 1, -v - 1}, tr[field.O2].Row(row))
			assert.Equal(t, []float64{v + 1}, tr[field.AG2].Row(row))
			assert.Equal(t, tr[field.G].Row(row), tr[field.G2].Row(row))

			done := 0.0
			if i == horizon-1 {
				done = 1
			}
			assert.Equal(t, done, tr[field.Done].Row(row)[0])
		}
	}

	_, err = Transitions(ep, horizon+1)
	assert.Error(t, err)
}
