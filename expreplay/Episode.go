package expreplay

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/buffer/storage"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/utils/intutils"
	"golang.org/x/exp/rand"
)

// EpisodeBuffer implements a Buffer which stores whole episodes of a
// fixed horizon T and derives transitions from them when sampling.
//
// The schema of an EpisodeBuffer describes a single step of each
// field. Observation-like fields (o and ag) are stored with T+1 steps
// per episode and all other fields with T steps, so an episode batch
// of n episodes holds, e.g., o with shape [n, T+1, dimO] and u with
// shape [n, T, dimU].
//
// Sampled transitions hold every stored field together with the
// next-step views o_2, ag_2 and g_2.
type EpisodeBuffer struct {
	*base
	stepSchema field.Schema
	horizon    int
	sampler    Sampler
	rng        *rand.Rand
}

// NewEpisodeBuffer returns a new EpisodeBuffer able to hold
// sizeInTransitions / horizon episodes. Transitions are drawn from the
// buffer using sampler. The seed determines the slots overwritten once
// the buffer is full.
func NewEpisodeBuffer(schema field.Schema, sizeInTransitions, horizon int,
	sampler Sampler, seed uint64, logger zerolog.Logger) (*EpisodeBuffer,
	error) {
	if horizon < 1 {
		return nil, newError("new", ErrConfiguration,
			fmt.Sprintf("horizon must be >= 1 (have %v)", horizon))
	}
	if !schema.Has(field.O) {
		return nil, newError("new", ErrConfiguration,
			"episode schema requires an observation field")
	}
	for _, name := range []string{field.O2, field.AG2, field.G2} {
		if schema.Has(name) {
			return nil, newError("new", ErrConfiguration,
				fmt.Sprintf("field %q is derived and cannot be stored", name))
		}
	}
	if sampler == nil {
		return nil, newError("new", ErrConfiguration, "nil sampler")
	}
	if err := sampler.check(schema, horizon); err != nil {
		return nil, err
	}

	episodeSchema := schema.Map(func(name string, shape []int) []int {
		return append([]int{steps(name, horizon)}, shape...)
	})
	b, err := newBase(episodeSchema, sizeInTransitions/horizon, logger)
	if err != nil {
		return nil, err
	}

	e := &EpisodeBuffer{
		base:       b,
		stepSchema: schema,
		horizon:    horizon,
		sampler:    sampler,
		rng:        rand.New(rand.NewSource(seed)),
	}
	b.allocate = e.storageIdx
	return e, nil
}

// steps returns the number of steps a field holds per episode
func steps(name string, horizon int) int {
	if field.ObservationLike(name) {
		return horizon + 1
	}
	return horizon
}

// storageIdx returns the slots to write inc episodes to. Episodes are
// written to consecutive empty slots while there is room. If inc
// exceeds the remaining room, the remaining empty slots are filled and
// the overflow is written to random occupied slots. Once the buffer is
// full, all inc episodes are written to random slots.
func (e *EpisodeBuffer) storageIdx(inc int) []int {
	switch {
	case e.currentSize+inc <= e.size:
		return intutils.Arange(e.currentSize, e.currentSize+inc)

	case e.currentSize < e.size:
		overflow := inc - (e.size - e.currentSize)
		idx := intutils.Arange(e.currentSize, e.size)
		for i := 0; i < overflow; i++ {
			idx = append(idx, e.rng.Intn(e.currentSize))
		}
		return idx

	default:
		idx := make([]int, inc)
		for i := range idx {
			idx[i] = e.rng.Intn(e.size)
		}
		return idx
	}
}

// Horizon returns the number of steps in each episode
func (e *EpisodeBuffer) Horizon() int {
	return e.horizon
}

// StepSchema returns the per-step schema of the stored fields
func (e *EpisodeBuffer) StepSchema() field.Schema {
	return e.stepSchema
}

// CurrentSizeTransitions returns the number of transitions stored
func (e *EpisodeBuffer) CurrentSizeTransitions() int {
	return e.currentSize * e.horizon
}

// episodes returns a view of the valid episodes in the buffer
func (e *EpisodeBuffer) episodes() *episodes {
	return &episodes{
		storage: e.storage,
		schema:  e.stepSchema,
		count:   e.currentSize,
		horizon: e.horizon,
	}
}

// SampleAll returns every transition in the buffer, ordered by episode
// and then by timestep
func (e *EpisodeBuffer) SampleAll() (field.Batch, error) {
	if e.currentSize == 0 {
		return nil, newError("sampleAll", ErrEmptyBuffer, "")
	}

	n := e.currentSize * e.horizon
	episodeIdx := make([]int, n)
	t := make([]int, n)
	for ep := 0; ep < e.currentSize; ep++ {
		for step := 0; step < e.horizon; step++ {
			episodeIdx[ep*e.horizon+step] = ep
			t[ep*e.horizon+step] = step
		}
	}
	return e.episodes().gather(episodeIdx, t), nil
}

// Sample returns batchSize transitions drawn by the buffer's Sampler
func (e *EpisodeBuffer) Sample(batchSize int) (field.Batch, error) {
	if e.currentSize == 0 {
		return nil, newError("sample", ErrEmptyBuffer, "")
	}
	if batchSize < 1 {
		return nil, newError("sample", ErrShapeMismatch,
			fmt.Sprintf("batch size must be >= 1 (have %v)", batchSize))
	}
	return e.sampler.sample(e.episodes(), batchSize)
}

// Load clears the buffer and stores the episodes in an archive. Each
// field in the archive must have shape [episodes, T(+1), dims...]. If
// numDemo > 0, only the first numDemo episodes are stored.
func (e *EpisodeBuffer) Load(path string, numDemo int) (field.Batch, error) {
	archive, err := ReadArchive(path)
	if err != nil {
		return nil, err
	}
	batch, err := archive.Batch()
	if err != nil {
		return nil, newError("load", ErrShapeMismatch, err.Error())
	}

	for _, name := range batch.Names() {
		a := batch[name]
		shape, ok := e.Schema().Lookup(name)
		if !ok {
			return nil, newError("load", ErrShapeMismatch,
				fmt.Sprintf("unknown field %q in archive", name))
		}
		if len(a.Shape()) != len(shape)+1 {
			return nil, newError("load", ErrShapeMismatch,
				fmt.Sprintf("field %q has shape %v, expected episodes x %v",
					name, a.Shape(), shape))
		}
		if numDemo > a.Len() {
			return nil, newError("load", ErrConfiguration,
				fmt.Sprintf("not enough demonstration data: requested %v "+
					"episodes, archive holds %v", numDemo, a.Len()))
		}
		if numDemo > 0 {
			batch[name] = a.Prefix(numDemo)
		}
	}

	if err := e.restore(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// episodes is a read-only view of the valid episodes of an
// EpisodeBuffer used by Samplers
type episodes struct {
	storage *storage.Storage
	schema  field.Schema
	count   int
	horizon int
}

// names returns the names of all transition fields, including the
// derived next-step views
func (e *episodes) names() []string {
	names := e.schema.Names()
	names = append(names, field.O2)
	if e.schema.Has(field.AG) {
		names = append(names, field.AG2)
	}
	if e.schema.Has(field.G) {
		names = append(names, field.G2)
	}
	return names
}

// source returns the stored field backing a transition field and the
// step offset of the view into it
func (e *episodes) source(name string) (string, int) {
	switch name {
	case field.O2:
		return field.O, 1
	case field.AG2:
		return field.AG, 1
	case field.G2:
		// The goal is constant across an episode
		return field.G, 0
	default:
		return name, 0
	}
}

// step returns a view of a transition field of episode ep at step t
func (e *episodes) step(name string, ep, t int) []float64 {
	stored, shift := e.source(name)
	shape, _ := e.schema.Lookup(stored)
	rs := field.Size(shape)
	row := e.storage.Row(stored, ep)
	t += shift
	return row[t*rs : (t+1)*rs]
}

// gather returns a copy of the transitions at (episodeIdx[i], t[i])
func (e *episodes) gather(episodeIdx, t []int) field.Batch {
	batch := make(field.Batch)
	for _, name := range e.names() {
		stored, _ := e.source(name)
		shape, _ := e.schema.Lookup(stored)
		a := field.Zeros(append([]int{len(t)}, shape...)...)
		for i := range t {
			copy(a.Row(i), e.step(name, episodeIdx[i], t[i]))
		}
		batch[name] = a
	}
	return batch
}
