package expreplay

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/reward"
	"golang.org/x/exp/rand"
)

// StaleQ is written to the q field of relabeled transitions. A cached
// value estimate is meaningless once the goal of a transition changes.
const StaleQ = -100.0

// hindsightSampler is a Sampler implementing Hindsight Experience
// Replay (https://arxiv.org/abs/1707.01495) with the "future" strategy.
// After drawing transitions uniformly, a fraction of them have their
// desired goal replaced by a goal achieved later in the same episode.
// Rewards of all drawn transitions are then recomputed.
type hindsightSampler struct {
	futureP float64
	reward  reward.Func
	rng     *rand.Rand
}

// NewHindsightSampler returns a new Sampler which relabels transitions
// with future achieved goals. The ratio k is the number of relabeled
// transitions per regular transition, so that each transition is
// relabeled with probability 1 - 1/(1+k). The reward function rewardFn
// is used to recompute rewards with the substituted goals.
func NewHindsightSampler(k float64, rewardFn reward.Func,
	seed uint64) (Sampler, error) {
	if k < 0 {
		return nil, newError("newHindsightSampler", ErrConfiguration,
			fmt.Sprintf("relabel ratio must be >= 0 (have %v)", k))
	}
	if rewardFn == nil {
		return nil, newError("newHindsightSampler", ErrConfiguration,
			"nil reward function")
	}

	return &hindsightSampler{
		futureP: 1 - (1.0 / (1 + k)),
		reward:  rewardFn,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// RelabelProbability returns the probability with which the goal of a
// sampled transition is replaced
func RelabelProbability(s Sampler) float64 {
	if h, ok := s.(*hindsightSampler); ok {
		return h.futureP
	}
	return 0
}

// check implements the Sampler interface
func (h *hindsightSampler) check(schema field.Schema, horizon int) error {
	if horizon < 1 {
		return newError("check", ErrConfiguration,
			"hindsight relabeling requires a fixed horizon")
	}
	if !schema.Has(field.AG) || !schema.Has(field.G) {
		return newError("check", ErrConfiguration,
			"hindsight relabeling requires achieved and desired goal fields")
	}
	ag, _ := schema.Lookup(field.AG)
	g, _ := schema.Lookup(field.G)
	if !field.SameShape(ag, g) {
		return newError("check", ErrConfiguration,
			fmt.Sprintf("achieved goal shape %v does not match desired "+
				"goal shape %v", ag, g))
	}
	return nil
}

// sample implements the Sampler interface
func (h *hindsightSampler) sample(e *episodes, batchSize int) (field.Batch,
	error) {
	episodeIdx, t := drawSteps(h.rng, e, batchSize)
	transitions := e.gather(episodeIdx, t)

	// Replace the goal with a future achieved goal, but only for the
	// relabeled transitions. The others keep their original goal.
	for _, i := range h.relabeled(batchSize) {
		futureOffset := int(h.rng.Float64() * float64(e.horizon-t[i]))
		futureT := t[i] + 1 + futureOffset

		futureAG := e.step(field.AG, episodeIdx[i], futureT)
		copy(transitions[field.G].Row(i), futureAG)
		copy(transitions[field.G2].Row(i), futureAG)

		if q, ok := transitions[field.Q]; ok {
			row := q.Row(i)
			for j := range row {
				row[j] = StaleQ
			}
		}
	}

	// Recompute the reward of every transition since the goal may have
	// been substituted
	r, err := h.reward(transitions[field.AG2], transitions[field.G2],
		transitions.Info())
	if err != nil {
		return nil, errors.Wrap(err, "sample: could not compute reward")
	}
	if r == nil || len(r.Data()) != batchSize {
		return nil, newError("sample", ErrShapeMismatch,
			fmt.Sprintf("reward function must return %v rewards", batchSize))
	}
	transitions[field.R], err = r.Reshape(batchSize, 1)
	if err != nil {
		return nil, newError("sample", ErrShapeMismatch, err.Error())
	}

	return transitions, nil
}

// relabeled returns the indices of the transitions, out of batchSize,
// whose goals should be relabeled. Each index is selected
// independently with probability futureP.
func (h *hindsightSampler) relabeled(batchSize int) []int {
	var indices []int
	for i := 0; i < batchSize; i++ {
		if h.rng.Float64() < h.futureP {
			indices = append(indices, i)
		}
	}
	return indices
}
