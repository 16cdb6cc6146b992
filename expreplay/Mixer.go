package expreplay

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/field"
)

// Mixer draws training batches from a replay buffer of the agent's own
// experience together with a buffer of demonstrations
type Mixer struct {
	Replay Buffer
	Demo   Buffer

	// BatchSize transitions are drawn from Replay and DemoBatchSize
	// transitions are drawn from Demo in each call to Sample. If
	// DemoBatchSize is 0, only Replay is sampled.
	BatchSize     int
	DemoBatchSize int

	logger zerolog.Logger
}

// NewMixer returns a new Mixer
func NewMixer(replay, demo Buffer, batchSize, demoBatchSize int,
	logger zerolog.Logger) (*Mixer, error) {
	if replay == nil {
		return nil, newError("newMixer", ErrConfiguration, "nil replay buffer")
	}
	if demoBatchSize > 0 && demo == nil {
		return nil, newError("newMixer", ErrConfiguration,
			"demonstration batch size set without a demonstration buffer")
	}
	if batchSize < 1 || demoBatchSize < 0 {
		return nil, newError("newMixer", ErrConfiguration,
			fmt.Sprintf("invalid batch sizes %v and %v", batchSize,
				demoBatchSize))
	}

	return &Mixer{
		Replay:        replay,
		Demo:          demo,
		BatchSize:     batchSize,
		DemoBatchSize: demoBatchSize,
		logger:        logger,
	}, nil
}

// InitDemo loads the first numDemo demonstration episodes in the
// archive at path into the demonstration buffer and returns them
func (m *Mixer) InitDemo(path string, numDemo int) (field.Batch, error) {
	if m.Demo == nil {
		return nil, newError("initDemo", ErrConfiguration,
			"no demonstration buffer")
	}

	m.logger.Info().
		Str("path", path).
		Int("num_demo", numDemo).
		Msg("initializing demonstration buffer")
	return m.Demo.Load(path, numDemo)
}

// Sample returns BatchSize replay transitions followed by DemoBatchSize
// demonstration transitions
func (m *Mixer) Sample() (field.Batch, error) {
	transitions, err := m.Replay.Sample(m.BatchSize)
	if err != nil {
		return nil, err
	}
	if m.DemoBatchSize == 0 {
		return transitions, nil
	}

	demo, err := m.Demo.Sample(m.DemoBatchSize)
	if err != nil {
		return nil, err
	}
	mixed, err := field.Concat(transitions, demo)
	if err != nil {
		return nil, newError("sample", ErrShapeMismatch, err.Error())
	}
	return mixed, nil
}
