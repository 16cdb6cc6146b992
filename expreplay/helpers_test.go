package expreplay

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/stretchr/testify/require"
)

var nop = zerolog.Nop()

// goalSchema returns a per-step schema for a goal-conditioned task
// with 2-dimensional observations and goals
func goalSchema(extra ...field.Spec) field.Schema {
	specs := []field.Spec{
		{Name: field.O, Shape: []int{2}},
		{Name: field.U, Shape: []int{1}},
		{Name: field.R, Shape: []int{1}},
		{Name: field.AG, Shape: []int{2}},
		{Name: field.G, Shape: []int{2}},
	}
	return field.MustSchema(append(specs, extra...)...)
}

// goalEpisodes returns a batch of episodes tagged with ids. At step t of
// episode id, o and ag are [id, t], u is [id], r is [0] and the goal
// is [-1, -1]. Extra fields of shape [1] are filled with the episode
// id.
func goalEpisodes(t *testing.T, horizon int, ids []int,
	extra ...string) field.Batch {
	n := len(ids)
	b := field.Batch{
		field.O:  field.Zeros(n, horizon+1, 2),
		field.AG: field.Zeros(n, horizon+1, 2),
		field.U:  field.Zeros(n, horizon, 1),
		field.R:  field.Zeros(n, horizon, 1),
		field.G:  field.Zeros(n, horizon, 2),
	}
	for _, name := range extra {
		b[name] = field.Zeros(n, horizon, 1)
	}

	for e, id := range ids {
		for step := 0; step <= horizon; step++ {
			obs := b[field.O].Row(e)[step*2 : step*2+2]
			obs[0], obs[1] = float64(id), float64(step)
			ag := b[field.AG].Row(e)[step*2 : step*2+2]
			ag[0], ag[1] = float64(id), float64(step)
		}
		for step := 0; step < horizon; step++ {
			b[field.U].Row(e)[step] = float64(id)
			g := b[field.G].Row(e)[step*2 : step*2+2]
			g[0], g[1] = -1, -1
			for _, name := range extra {
				b[name].Row(e)[step] = float64(id)
			}
		}
	}
	return b
}

// transitions returns n ring buffer transitions whose fields all hold
// start, start+1, ..., start+n-1
func transitions(t *testing.T, start, n int) field.Batch {
	o := field.Zeros(n, 2)
	o2 := field.Zeros(n, 2)
	u := field.Zeros(n, 1)
	r := field.Zeros(n, 1)
	done := field.Zeros(n, 1)
	for i := 0; i < n; i++ {
		v := float64(start + i)
		require.NoError(t, o.SetRow(i, []float64{v, v}))
		require.NoError(t, o2.SetRow(i, []float64{v + 1, v + 1}))
		require.NoError(t, u.SetRow(i, []float64{v}))
		require.NoError(t, r.SetRow(i, []float64{v}))
	}
	return field.Batch{field.O: o, field.O2: o2, field.U: u, field.R: r,
		field.Done: done}
}

func ringSchema() field.Schema {
	return field.MustSchema(
		field.Spec{Name: field.O, Shape: []int{2}},
		field.Spec{Name: field.O2, Shape: []int{2}},
		field.Spec{Name: field.U, Shape: []int{1}},
		field.Spec{Name: field.R, Shape: []int{1}},
		field.Spec{Name: field.Done, Shape: []int{1}},
	)
}

// ids returns the episode ids stored in each slot of an episode buffer
func ids(t *testing.T, e *EpisodeBuffer) []int {
	all, err := e.SampleAll()
	require.NoError(t, err)

	out := make([]int, e.CurrentSize())
	for ep := range out {
		out[ep] = int(all[field.U].Row(ep * e.Horizon())[0])
	}
	return out
}
