// Package reward implements goal-conditioned reward functions used to
// recompute rewards after hindsight goal relabeling
package reward

import (
	"fmt"

	"github.com/samuelfneumann/goreplay/field"
	"gonum.org/v1/gonum/floats"
)

// Func computes the reward of each transition in a batch from its
// achieved goal, desired goal, and auxiliary info fields. The returned
// Array must hold one reward per transition and have shape [n, 1].
//
// A Func must be pure: it must not modify its arguments or depend on
// hidden state.
type Func func(achievedGoal, desiredGoal *field.Array,
	info map[string]*field.Array) (*field.Array, error)

// GoalDistance returns a Func rewarding transitions by the Euclidean
// distance between the achieved and desired goals. If sparse is true,
// the reward is -1 when the distance exceeds threshold and 0
// otherwise. If sparse is false, the reward is the negative distance.
func GoalDistance(threshold float64, sparse bool) Func {
	return func(achievedGoal, desiredGoal *field.Array,
		_ map[string]*field.Array) (*field.Array, error) {
		if err := checkGoals(achievedGoal, desiredGoal); err != nil {
			return nil, err
		}

		n := achievedGoal.Len()
		r := field.Zeros(n, 1)
		for i := 0; i < n; i++ {
			d := floats.Distance(achievedGoal.Row(i), desiredGoal.Row(i), 2)
			switch {
			case !sparse:
				r.Data()[i] = -d
			case d > threshold:
				r.Data()[i] = -1
			}
		}
		return r, nil
	}
}

// Scaled returns a Func which shifts and then scales the rewards of fn
// as (r + shift) / scale
func Scaled(fn Func, shift, scale float64) (Func, error) {
	if scale == 0 {
		return nil, fmt.Errorf("scaled: scale must be non-zero")
	}

	return func(achievedGoal, desiredGoal *field.Array,
		info map[string]*field.Array) (*field.Array, error) {
		r, err := fn(achievedGoal, desiredGoal, info)
		if err != nil {
			return nil, err
		}

		scaled := r.Clone()
		floats.AddConst(shift, scaled.Data())
		floats.Scale(1/scale, scaled.Data())
		return scaled, nil
	}, nil
}

// FromInfo returns a Func which ignores goals and reads the reward of
// each transition from the named info field. This is useful for
// environments which report success through their info.
func FromInfo(name string, success, failure float64) Func {
	return func(achievedGoal, _ *field.Array,
		info map[string]*field.Array) (*field.Array, error) {
		a, ok := info[name]
		if !ok {
			return nil, fmt.Errorf("fromInfo: no info field %q", name)
		}
		if a.Len() != achievedGoal.Len() {
			return nil, fmt.Errorf("fromInfo: info field %q has %v "+
				"records, expected %v", name, a.Len(), achievedGoal.Len())
		}

		r := field.Zeros(a.Len(), 1)
		for i := 0; i < a.Len(); i++ {
			r.Data()[i] = failure
			if floats.Sum(a.Row(i)) != 0 {
				r.Data()[i] = success
			}
		}
		return r, nil
	}
}

// checkGoals ensures achieved and desired goals can be compared
func checkGoals(achievedGoal, desiredGoal *field.Array) error {
	if achievedGoal == nil || desiredGoal == nil {
		return fmt.Errorf("nil goal")
	}
	if !field.SameShape(achievedGoal.Shape(), desiredGoal.Shape()) {
		return fmt.Errorf("achieved goal shape %v does not match desired "+
			"goal shape %v", achievedGoal.Shape(), desiredGoal.Shape())
	}
	return nil
}
