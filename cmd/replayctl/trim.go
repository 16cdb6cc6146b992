package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var trimNumDemo int

var trimCmd = &cobra.Command{
	Use:   "trim <archive> <output>",
	Short: "Keep only the first episodes of an archive",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrim,
}

func init() {
	trimCmd.Flags().IntVar(&trimNumDemo, "num-demo", 0,
		"Number of episodes to keep (0 keeps every record)")
}

func runTrim(cmd *cobra.Command, args []string) error {
	buffer, err := newBuffer(cfg, 0)
	if err != nil {
		return err
	}
	if _, err := buffer.Load(args[0], trimNumDemo); err != nil {
		return err
	}
	if err := buffer.Dump(args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %v records to %v\n",
		buffer.CurrentSize(), args[1])
	return nil
}
