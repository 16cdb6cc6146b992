package expreplay

import (
	"github.com/samuelfneumann/goreplay/field"
	"golang.org/x/exp/rand"
)

// Sampler implements functionality for choosing how transitions are
// drawn from the episodes stored in an EpisodeBuffer
type Sampler interface {
	// sample draws batchSize transitions from the valid episodes
	sample(e *episodes, batchSize int) (field.Batch, error)

	// check returns an error if the Sampler cannot draw from episodes
	// with the given per-step schema and horizon
	check(schema field.Schema, horizon int) error
}

// uniformSampler is a Sampler which draws an episode and a timestep
// uniformly at random for each transition
type uniformSampler struct {
	rng *rand.Rand
}

// NewUniformSampler returns a new Sampler which draws transitions
// uniformly randomly from an EpisodeBuffer
func NewUniformSampler(seed uint64) Sampler {
	return &uniformSampler{rng: rand.New(rand.NewSource(seed))}
}

// check implements the Sampler interface
func (u *uniformSampler) check(field.Schema, int) error {
	return nil
}

// sample implements the Sampler interface
func (u *uniformSampler) sample(e *episodes, batchSize int) (field.Batch,
	error) {
	episodeIdx, t := drawSteps(u.rng, e, batchSize)
	return e.gather(episodeIdx, t), nil
}

// drawSteps draws batchSize (episode, timestep) pairs independently
// and uniformly at random
func drawSteps(rng *rand.Rand, e *episodes, batchSize int) ([]int, []int) {
	episodeIdx := make([]int, batchSize)
	t := make([]int, batchSize)
	for i := range episodeIdx {
		episodeIdx[i] = rng.Intn(e.count)
	}
	for i := range t {
		t[i] = rng.Intn(e.horizon)
	}
	return episodeIdx, t
}
