// Package rollout records episodes of agent-environment interaction in
// the layout stored by an expreplay.EpisodeBuffer
package rollout

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/timestep"
	"gonum.org/v1/gonum/mat"
)

// Recorder accumulates a fixed number of steps for each of a batch of
// parallel episodes. At step t of episode b, the Recorder stores
// o[b, t+1] and ag[b, t+1] from the next TimeStep and u[b, t], r[b, t],
// g[b, t] and any info fields from the action and reward of the step.
//
// The schema given to a Recorder describes a single step of each
// field, as for an EpisodeBuffer.
type Recorder struct {
	schema    field.Schema
	batchSize int
	horizon   int

	episode field.Batch
	current []timestep.TimeStep
	t       int
}

// NewRecorder returns a new Recorder of batchSize episodes of horizon
// steps each
func NewRecorder(schema field.Schema, batchSize, horizon int) (*Recorder,
	error) {
	if batchSize < 1 || horizon < 1 {
		return nil, fmt.Errorf("newRecorder: invalid batch size or horizon"+
			"\n\twant(>= 1, >= 1)\n\thave(%v, %v)", batchSize, horizon)
	}
	for _, name := range []string{field.O, field.U, field.R} {
		if !schema.Has(name) {
			return nil, fmt.Errorf("newRecorder: missing field %q", name)
		}
	}
	if schema.Has(field.AG) != schema.Has(field.G) {
		return nil, fmt.Errorf("newRecorder: achieved and desired goals " +
			"must be recorded together")
	}

	episode := make(field.Batch, schema.Len())
	for _, spec := range schema.Specs() {
		if !recordable(spec.Name) {
			return nil, fmt.Errorf("newRecorder: cannot record field %q",
				spec.Name)
		}
		if field.IsInfo(spec.Name) && field.Size(spec.Shape) != 1 {
			return nil, fmt.Errorf("newRecorder: info field %q must be "+
				"scalar", spec.Name)
		}
		steps := horizon
		if field.ObservationLike(spec.Name) {
			steps++
		}
		episode[spec.Name] = field.Zeros(append([]int{batchSize, steps},
			spec.Shape...)...)
	}

	return &Recorder{
		schema:    schema,
		batchSize: batchSize,
		horizon:   horizon,
		episode:   episode,
	}, nil
}

// recordable returns whether a Recorder can fill a field
func recordable(name string) bool {
	switch name {
	case field.O, field.U, field.R, field.AG, field.G:
		return true
	default:
		return field.IsInfo(name)
	}
}

// Reset starts a new batch of episodes from their first TimeSteps
func (r *Recorder) Reset(first []timestep.TimeStep) error {
	if len(first) != r.batchSize {
		return fmt.Errorf("reset: invalid number of timesteps \n\twant(%v)"+
			"\n\thave(%v)", r.batchSize, len(first))
	}

	for _, a := range r.episode {
		zero(a.Data())
	}
	for b, step := range first {
		if err := r.observe(b, 0, step); err != nil {
			return fmt.Errorf("reset: %v", err)
		}
	}
	r.current = append([]timestep.TimeStep(nil), first...)
	r.t = 0
	return nil
}

// Record records one step of every episode given the actions taken
// and the resulting TimeSteps
func (r *Recorder) Record(actions []mat.Vector,
	next []timestep.TimeStep) error {
	if r.current == nil {
		return fmt.Errorf("record: recorder must be reset before recording")
	}
	if r.Done() {
		return fmt.Errorf("record: episodes already hold %v steps", r.horizon)
	}
	if len(actions) != r.batchSize || len(next) != r.batchSize {
		return fmt.Errorf("record: invalid number of actions or timesteps"+
			"\n\twant(%v, %v)\n\thave(%v, %v)", r.batchSize, r.batchSize,
			len(actions), len(next))
	}

	for b := range next {
		if err := r.write(field.U, b, r.t, actions[b]); err != nil {
			return fmt.Errorf("record: %v", err)
		}
		r.step(field.R, b, r.t)[0] = next[b].Reward

		if r.schema.Has(field.G) {
			if err := r.write(field.G, b, r.t,
				r.current[b].DesiredGoal); err != nil {
				return fmt.Errorf("record: %v", err)
			}
		}
		for _, name := range r.schema.Names() {
			if !field.IsInfo(name) {
				continue
			}
			key := strings.TrimPrefix(name, field.InfoPrefix)
			v, ok := next[b].Info[key]
			if !ok {
				return fmt.Errorf("record: timestep of episode %v has no "+
					"info %q", b, key)
			}
			r.step(name, b, r.t)[0] = v
		}

		if err := r.observe(b, r.t+1, next[b]); err != nil {
			return fmt.Errorf("record: %v", err)
		}
	}

	r.current = append(r.current[:0], next...)
	r.t++
	return nil
}

// Done returns whether every episode holds horizon steps
func (r *Recorder) Done() bool {
	return r.t == r.horizon
}

// Episode returns a copy of the recorded episodes
func (r *Recorder) Episode() (field.Batch, error) {
	if r.current == nil || !r.Done() {
		return nil, fmt.Errorf("episode: episodes hold %v of %v steps",
			r.t, r.horizon)
	}
	return r.episode.Clone(), nil
}

// observe records the observation and achieved goal of step at time t
func (r *Recorder) observe(b, t int, step timestep.TimeStep) error {
	if err := r.write(field.O, b, t, step.Observation); err != nil {
		return err
	}
	if r.schema.Has(field.AG) {
		return r.write(field.AG, b, t, step.AchievedGoal)
	}
	return nil
}

// step returns a view of field name of episode b at time t
func (r *Recorder) step(name string, b, t int) []float64 {
	shape, _ := r.schema.Lookup(name)
	rs := field.Size(shape)
	return r.episode[name].Row(b)[t*rs : (t+1)*rs]
}

// write copies v into field name of episode b at time t
func (r *Recorder) write(name string, b, t int, v mat.Vector) error {
	dst := r.step(name, b, t)
	if v == nil || v.Len() != len(dst) {
		have := 0
		if v != nil {
			have = v.Len()
		}
		return fmt.Errorf("field %q of episode %v has invalid length "+
			"\n\twant(%v)\n\thave(%v)", name, b, len(dst), have)
	}
	for i := range dst {
		dst[i] = v.AtVec(i)
	}
	return nil
}

func zero(data []float64) {
	for i := range data {
		data[i] = 0
	}
}
