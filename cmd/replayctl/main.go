package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/goreplay/internal/config"
)

var (
	cfg        *config.Config
	logger     zerolog.Logger
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "replayctl",
	Short: "Experience replay buffer tool",
	Long: `replayctl generates, inspects, trims and samples experience replay
archives, and runs online collection experiments with hindsight goal
relabeling.

Configuration is read from --config (yaml or json) and environment
variables prefixed with REPLAY_, e.g. REPLAY_REPLAY_SIZE=1000.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(synthCmd, inspectCmd, sampleCmd, trimCmd, collectCmd)
}

// loadConfig loads the configuration and logger used by every command
func loadConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("log_level",
		cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}
	var err error
	cfg, err = config.Load(v, configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}
	logger = cfg.Logger(cmd.ErrOrStderr())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
