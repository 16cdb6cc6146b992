package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/goreplay/expreplay"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "Print the fields of an archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	archive, err := expreplay.ReadArchive(args[0])
	if err != nil {
		return err
	}
	batch, err := archive.Batch()
	if err != nil {
		return err
	}

	out := func(format string, a ...interface{}) {
		fmt.Fprintf(cmd.OutOrStdout(), format, a...)
	}
	out("archive %v\n", archive.ID)
	out("created %v\n", archive.Created.Format(time.RFC3339))
	out("records %v\n", archive.Len())
	describe(out, batch)
	return nil
}

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}
