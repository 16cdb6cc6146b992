package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/goreplay/environment"
	"github.com/samuelfneumann/goreplay/experiment"
	"github.com/samuelfneumann/goreplay/experiment/checkpointer"
	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/experiment/trackers"
	"github.com/samuelfneumann/goreplay/expreplay"
	"github.com/samuelfneumann/goreplay/field"
	"github.com/samuelfneumann/goreplay/normalizer"
)

var (
	collectDir             string
	collectCheckpointEvery int
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run an online collection experiment",
	Long: `collect runs an online experiment: each epoch, one episode is
generated in each environment and stored in the replay buffer, after
which training batches are drawn from the replay buffer, mixed with
demonstrations if demo_file is set. Observation and goal statistics of
the training batches are tracked by normalizers.

Episode returns and success are saved to the output directory, and the
replay buffer is checkpointed there every --checkpoint-every
transitions.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVar(&collectDir, "out", ".",
		"Output directory")
	collectCmd.Flags().IntVar(&collectCheckpointEvery, "checkpoint-every", 0,
		"Checkpoint the replay buffer every n transitions (0 disables)")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	replay, err := newBuffer(cfg, 0)
	if err != nil {
		return err
	}
	var demo expreplay.Buffer
	if cfg.DemoFile != "" {
		if demo, err = newBuffer(cfg, 1); err != nil {
			return err
		}
	}
	mixer, err := expreplay.NewMixer(replay, demo,
		cfg.Experiment.BatchSize, cfg.Experiment.DemoBatchSize, logger)
	if err != nil {
		return err
	}
	if demo != nil {
		if _, err := mixer.InitDemo(cfg.DemoFile, cfg.NumDemo); err != nil {
			return err
		}
	}

	worker, err := newWorker(cfg)
	if err != nil {
		return err
	}
	train, err := normalizingTrainer()
	if err != nil {
		return err
	}

	var checkpointers []checkpointer.Checkpointer
	if collectCheckpointEvery > 0 {
		c, err := checkpointer.NewNStep(collectCheckpointEvery, replay,
			checkpointer.FilenameEnumerator(0,
				filepath.Join(collectDir, "replay"), ".gz"))
		if err != nil {
			return err
		}
		checkpointers = append(checkpointers, c)
	}

	success := trackers.NewSuccess(environment.SuccessInfo,
		filepath.Join(collectDir, "success.bin"))
	returns := trackers.NewReturn(filepath.Join(collectDir, "return.bin"))
	exp, err := experiment.NewOnline(cfg.Experiment, worker, mixer, train,
		[]tracker.Tracker{success, returns}, checkpointers, logger)
	if err != nil {
		return err
	}

	if err := exp.Run(); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return err
	}
	logger.Info().
		Int("transitions", exp.Transitions()).
		Float64("success_rate", success.Rate(cfg.Env.Workers)).
		Msg("finished collection")
	return nil
}

// normalizingTrainer returns a training hook which updates observation
// and goal statistics with each training batch and builds the
// normalized network inputs of the batch
func normalizingTrainer() (func(field.Batch) error, error) {
	oStats, err := normalizer.New(cfg.Env.Dim, cfg.NormEps, cfg.NormClip)
	if err != nil {
		return nil, err
	}
	gStats, err := normalizer.New(cfg.Env.Dim, cfg.NormEps, cfg.NormClip)
	if err != nil {
		return nil, err
	}

	return func(batch field.Batch) error {
		if err := oStats.Update(batch[field.O]); err != nil {
			return err
		}
		if err := gStats.Update(batch[field.G]); err != nil {
			return err
		}
		o, err := oStats.Normalize(batch[field.O])
		if err != nil {
			return err
		}
		g, err := gStats.Normalize(batch[field.G])
		if err != nil {
			return err
		}

		// Network inputs are normalized observations concatenated with
		// normalized goals
		inputs, err := tensor.Concat(1, o.Tensor(), g.Tensor())
		if err != nil {
			return err
		}

		logger.Debug().
			Floats64("o_mean", oStats.Mean()).
			Floats64("o_std", oStats.Std()).
			Floats64("g_mean", gStats.Mean()).
			Ints("inputs", []int(inputs.Shape())).
			Msg("trained on batch")
		return nil
	}, nil
}
