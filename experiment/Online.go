package experiment

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/goreplay/experiment/checkpointer"
	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/expreplay"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/rollout"
	ts "github.com/samuelfneumann/goreplay/timestep"
)

// Online is an Experiment that generates episodes online, stores them
// in a replay buffer, and draws training batches from the buffer after
// each epoch of episodes.
type Online struct {
	worker *rollout.Worker
	mixer  *expreplay.Mixer

	// train consumes each training batch drawn. It may be nil.
	train func(field.Batch) error

	epochs          int
	batchesPerEpoch int
	currentEpoch    int
	transitions     int

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        zerolog.Logger
}

// NewOnline creates and returns a new online experiment which runs
// config.Epochs epochs. Each epoch, the worker generates one batch of
// episodes which is stored in the replay buffer of mixer, flattened to
// transitions if the buffer is a RingBuffer, after which
// config.BatchesPerEpoch batches are drawn from mixer and passed to
// train.
func NewOnline(config Config, worker *rollout.Worker, mixer *expreplay.Mixer,
	train func(field.Batch) error, t []tracker.Tracker,
	c []checkpointer.Checkpointer, logger zerolog.Logger) (*Online, error) {
	if config.Epochs < 1 || config.BatchesPerEpoch < 0 {
		return nil, fmt.Errorf("newOnline: invalid epochs or batches per "+
			"epoch \n\twant(>= 1, >= 0)\n\thave(%v, %v)", config.Epochs,
			config.BatchesPerEpoch)
	}
	if worker == nil || mixer == nil {
		return nil, fmt.Errorf("newOnline: worker and mixer must be non-nil")
	}

	return &Online{
		worker:          worker,
		mixer:           mixer,
		train:           train,
		epochs:          config.Epochs,
		batchesPerEpoch: config.BatchesPerEpoch,
		trackers:        t,
		checkpointers:   c,
		logger:          logger,
	}, nil
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpoch runs a single epoch of the experiment
func (o *Online) RunEpoch() error {
	episodes, err := o.worker.Generate()
	if err != nil {
		return fmt.Errorf("runEpoch: %v", err)
	}
	n, err := episodes.Len()
	if err != nil {
		return fmt.Errorf("runEpoch: %v", err)
	}
	horizon := episodes[field.U].StepShape()[0]

	// Ring buffers store raw transitions
	stored := episodes
	if _, ok := o.mixer.Replay.(*expreplay.RingBuffer); ok {
		stored, err = rollout.Transitions(episodes, horizon)
		if err != nil {
			return fmt.Errorf("runEpoch: %v", err)
		}
	}
	if err := o.mixer.Replay.Store(stored); err != nil {
		return fmt.Errorf("runEpoch: %w", err)
	}
	for _, t := range o.trackers {
		if err := t.Track(episodes); err != nil {
			return fmt.Errorf("runEpoch: %v", err)
		}
	}

	for i := 0; i < o.batchesPerEpoch; i++ {
		batch, err := o.mixer.Sample()
		if err != nil {
			return fmt.Errorf("runEpoch: %w", err)
		}
		if o.train != nil {
			if err := o.train(batch); err != nil {
				return fmt.Errorf("runEpoch: %v", err)
			}
		}
	}

	o.transitions += n * horizon
	o.currentEpoch++
	o.checkpoint(ts.New(ts.Last, 0, 1, nil, o.transitions))

	o.logger.Info().
		Int("epoch", o.currentEpoch).
		Int("transitions", o.transitions).
		Int("buffer_size", o.mixer.Replay.CurrentSize()).
		Msg("finished epoch")
	return nil
}

// Run runs the entire experiment for all epochs
func (o *Online) Run() error {
	for o.currentEpoch < o.epochs {
		if err := o.RunEpoch(); err != nil {
			return err
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return err
		}
	}
	return nil
}

// checkpoint checkpoints the replay buffer with each Checkpointer.
// Failed checkpoints are logged and do not stop the experiment.
func (o *Online) checkpoint(t ts.TimeStep) {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			o.logger.Error().Err(err).Int("transitions", t.Number).
				Msg("checkpoint failed")
		}
	}
}

// Transitions returns the number of transitions generated so far
func (o *Online) Transitions() int {
	return o.transitions
}
