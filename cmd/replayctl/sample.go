package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sampleBatchSize int

var sampleCmd = &cobra.Command{
	Use:   "sample <archive>",
	Short: "Load an archive into the configured buffer and draw a batch",
	Long: `sample loads the first num_demo episodes of an archive (all if
num_demo is 0) into the configured replay buffer and prints a summary
of a batch drawn from it. With the "her" strategy, the batch holds
relabeled goals and recomputed rewards.`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleBatchSize, "batch-size", 256,
		"Number of transitions to draw")
}

func runSample(cmd *cobra.Command, args []string) error {
	buffer, err := newBuffer(cfg, 0)
	if err != nil {
		return err
	}
	if _, err := buffer.Load(args[0], cfg.NumDemo); err != nil {
		return err
	}

	batch, err := buffer.Sample(sampleBatchSize)
	if err != nil {
		return err
	}

	out := func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.OutOrStdout(), format, a...)
	}
	out("buffer holds %v of %v records\n", buffer.CurrentSize(),
		buffer.MaxSize())
	out("sampled %v transitions\n", sampleBatchSize)
	describe(out, batch)
	return nil
}
