package rollout

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/field"
)

// Transitions flattens a batch of episodes of horizon steps into the
// raw transitions stored by an expreplay.RingBuffer, ordered by episode
// and then by step. Each transition holds the next-step views o_2,
// ag_2 and g_2 and a done marker set on the last step of each episode.
func Transitions(episodes field.Batch, horizon int) (field.Batch, error) {
	n, err := episodes.Len()
	if err != nil {
		return nil, fmt.Errorf("transitions: %v", err)
	}
	if _, ok := episodes[field.O]; !ok {
		return nil, fmt.Errorf("transitions: episodes hold no observations")
	}

	// name of each transition field mapped to its source and step offset
	type view struct {
		source string
		shift  int
	}
	views := make(map[string]view, 2*len(episodes))
	for name := range episodes {
		views[name] = view{name, 0}
	}
	views[field.O2] = view{field.O, 1}
	if _, ok := episodes[field.AG]; ok {
		views[field.AG2] = view{field.AG, 1}
	}
	if _, ok := episodes[field.G]; ok {
		views[field.G2] = view{field.G, 0}
	}

	out := make(field.Batch, len(views)+1)
	for name, v := range views {
		a := episodes[v.source]
		steps := horizon
		if field.ObservationLike(v.source) {
			steps++
		}
		shape := a.Shape()
		if len(shape) < 2 || shape[1] != steps {
			return nil, fmt.Errorf("transitions: field %q has shape %v, "+
				"expected %v steps", v.source, shape, steps)
		}

		stepShape := shape[2:]
		rs := field.Size(stepShape)
		flat := field.Zeros(append([]int{n * horizon}, stepShape...)...)
		for ep := 0; ep < n; ep++ {
			row := a.Row(ep)
			for t := 0; t < horizon; t++ {
				src := row[(t+v.shift)*rs : (t+v.shift+1)*rs]
				copy(flat.Row(ep*horizon+t), src)
			}
		}
		out[name] = flat
	}

	done := field.Zeros(n*horizon, 1)
	for ep := 0; ep < n; ep++ {
		done.Row(ep*horizon + horizon - 1)[0] = 1
	}
	out[field.Done] = done
	return out, nil
}
