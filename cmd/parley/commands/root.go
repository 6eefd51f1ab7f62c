package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parleylab/parley/cmd/parley/internal/config"
)

var (
	// Global flags
	verbose bool

	// Global configuration (resolved at init time)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Multi-agent conversation simulator",
	Long: `parley - run LLM-driven agents against each other and record what happens.

A scenario file names the agents, their goals, and the models that drive
them. A clock ticks, agents decide, speech and commands flow over the
message bus, and every action lands in the episode store.

Configuration is stored in the OS config directory:
  macOS:   ~/Library/Application Support/parley/
  Linux:   ~/.config/parley/
  Windows: %AppData%/parley/

Examples:
  # Run a scenario
  parley run -f negotiation.yaml

  # Inspect recorded episodes
  parley episodes list
  parley episodes show <id>
  parley episodes export <id> --format json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// configLoadErr stores the error from config.Load() for deferred reporting.
var configLoadErr error

func initConfig() {
	cfg, err := config.Load()
	if err != nil {
		// Commands that need config get a clear error via GetConfig().
		// This keeps commands like 'parley version' working.
		configLoadErr = err
		return
	}
	globalConfig = cfg
}

// GetConfig returns the global configuration.
func GetConfig() (*config.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("config not available: %w", err)
		}
		globalConfig = cfg
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
