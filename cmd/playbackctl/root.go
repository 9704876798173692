package main

import (
	"io"

	"github.com/enetx/playback/internal/config"
	xlog "github.com/enetx/playback/internal/log"
	"github.com/enetx/playback/internal/sim"
	"github.com/enetx/playback/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logLevel   string
	metrics    bool
}

// session bundles everything a subcommand needs.
type session struct {
	cfg      config.Config
	log      zerolog.Logger
	player   *sim.Player
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "playbackctl",
		Short:         "Drive a simulated player through the playback state machine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print Prometheus metrics on exit")

	root.AddCommand(
		newDotCmd(opts),
		newRunCmd(opts),
		newSnapshotCmd(opts),
		newReplCmd(opts),
	)

	return root
}

// newSession loads the configuration and builds the player. Logs go to
// logOut so that command output on stdout stays machine readable.
func newSession(opts *options, logOut io.Writer) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log := xlog.New(xlog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: logOut})

	player := sim.New(sim.Options{
		InitialState: cfg.InitialState,
		Media:        sim.Media{Source: "playbackctl://media", Local: cfg.Downloaded},
		Autoplay:     cfg.Autoplay,
		AutoAdvance:  cfg.AutoAdvance,
		Logger:       log,
	})

	s := &session{cfg: cfg, log: xlog.WithComponent(log, "playbackctl"), player: player}

	if opts.metrics {
		s.registry = prometheus.NewRegistry()
		metrics.NewCollector(s.registry, cfg.MetricsNamespace).Attach(player.Machine())
	}

	return s, nil
}
