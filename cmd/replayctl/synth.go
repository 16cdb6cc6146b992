package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/goreplay/environment"
	"github.com/samuelfneumann/goreplay/experiment"
	"github.com/samuelfneumann/goreplay/experiment/tracker"
	"github.com/samuelfneumann/goreplay/experiment/trackers"
	"github.com/samuelfneumann/goreplay/expreplay"
)

var synthCmd = &cobra.Command{
	Use:   "synth <archive>",
	Short: "Generate an archive of point reaching episodes",
	Long: `synth runs experiment.epochs epochs of env.workers point reaching
episodes, stores them in the configured replay buffer, and dumps the
buffer to an archive. A positive env.gain generates demonstrations with
a scripted policy.`,
	Args: cobra.ExactArgs(1),
	RunE: runSynth,
}

func runSynth(cmd *cobra.Command, args []string) error {
	buffer, err := newBuffer(cfg, 0)
	if err != nil {
		return err
	}
	worker, err := newWorker(cfg)
	if err != nil {
		return err
	}
	mixer, err := expreplay.NewMixer(buffer, nil, 1, 0, logger)
	if err != nil {
		return err
	}

	success := trackers.NewSuccess(environment.SuccessInfo, "")
	exp, err := experiment.NewOnline(
		experiment.Config{Epochs: cfg.Experiment.Epochs},
		worker, mixer, nil, []tracker.Tracker{success}, nil, logger,
	)
	if err != nil {
		return err
	}
	if err := exp.Run(); err != nil {
		return err
	}

	if err := buffer.Dump(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %v records (%v episodes, "+
		"success rate %.2f) to %v\n", buffer.CurrentSize(),
		worker.Episodes(), success.Rate(0), args[0])
	return nil
}
