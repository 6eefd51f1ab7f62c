package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/parleylab/parley/cmd/parley/internal/config"
	"github.com/parleylab/parley/pkg/agent"
	"github.com/parleylab/parley/pkg/bus"
	"github.com/parleylab/parley/pkg/dashboard"
	"github.com/parleylab/parley/pkg/episode"
	"github.com/parleylab/parley/pkg/gen"
	"github.com/parleylab/parley/pkg/node"
)

var runFlags struct {
	scenario  string
	providers string
	data      string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario",
	Long: `Run a scenario: start the bus, the agents, the clock, and record
the resulting episode.

The scenario file lists the agents with their goals, models, and query
intervals. Models are resolved through the provider catalog
(providers.yaml in the config directory).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd.Context())
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.scenario, "file", "f", "", "scenario file (required)")
	runCmd.Flags().StringVar(&runFlags.providers, "providers", "", "provider catalog file (default: config dir)")
	runCmd.Flags().StringVar(&runFlags.data, "data", "", "episode database directory (default: config dir)")
	runCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(runCmd)
}

func runScenario(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logLevel := slog.LevelInfo
	if IsVerbose() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	sc, err := config.LoadScenario(runFlags.scenario)
	if err != nil {
		return err
	}
	period, err := sc.Period()
	if err != nil {
		return err
	}

	cfg, err := GetConfig()
	if err != nil {
		return err
	}
	providersPath := runFlags.providers
	if providersPath == "" {
		providersPath = cfg.ProvidersPath()
	}
	registry, err := config.LoadRegistry(ctx, providersPath)
	if err != nil {
		return err
	}
	// Fail on unknown models before anything starts.
	for _, a := range sc.Agents {
		if _, err := registry.Lookup(a.Model); err != nil {
			return fmt.Errorf("agent %q: %w", a.Name, err)
		}
	}

	dataDir := runFlags.data
	if dataDir == "" {
		dataDir = cfg.EpisodesDir()
	}
	store, err := episode.Open(episode.Options{Dir: dataDir, Logger: logger})
	if err != nil {
		return err
	}
	defer store.Close()

	meta, err := store.Create(ctx, sc.Name, sc.AgentNames())
	if err != nil {
		return err
	}

	b := bus.New()
	defer b.Close()
	pipeline := gen.NewPipeline(registry, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, len(sc.Agents)+1)

	for _, sa := range sc.Agents {
		a, err := agent.New(agent.Config{
			Name:          sa.Name,
			Goal:          sa.Goal,
			Model:         sa.Model,
			QueryInterval: max(sa.QueryInterval, 1),
			Pipeline:      pipeline,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		var peers []string
		for _, other := range sc.Agents {
			if other.Name != sa.Name {
				peers = append(peers, config.OutputTopic(other.Name))
			}
		}
		n, err := node.New(node.Config{
			Agent:       a,
			Bus:         b,
			TickTopic:   config.TickTopic,
			InputTopic:  sa.InputTopic,
			OutputTopic: config.OutputTopic(sa.Name),
			PeerTopics:  peers,
			Store:       store,
			EpisodeID:   meta.ID,
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	if sc.Dashboard != "" {
		srv, err := dashboard.New(dashboard.Config{
			Addr:   sc.Dashboard,
			Store:  store,
			Bus:    b,
			Logger: logger,
		})
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}()
	}

	clock, err := node.NewClock(node.ClockConfig{
		Bus:      b,
		Topic:    config.TickTopic,
		Period:   period,
		MaxTicks: sc.MaxTicks,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	logger.Info("scenario started", "name", sc.Name, "episode", meta.ID, "agents", len(sc.Agents))
	if err := clock.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cancel()
	wg.Wait()
	close(errCh)
	for err := range errCh {
		return err
	}

	fmt.Printf("episode %s recorded\n", meta.ID)
	return nil
}
