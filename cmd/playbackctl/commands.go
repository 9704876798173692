package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/enetx/playback"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newDotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dot",
		Short: "Print the transition graph in Graphviz DOT format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), s.player.Machine().ToDOT())
			return err
		},
	}
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run EVENT...",
		Short: "Post events in order and print the state after each one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s %s\n", "(initial)", s.player.Machine().State())

			if err := s.replay(out, args); err != nil {
				return err
			}

			return s.writeMetrics(out)
		},
	}
}

func newSnapshotCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [EVENT...]",
		Short: "Post events and print the resulting machine snapshot as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if err := s.replay(io.Discard, args); err != nil {
				return err
			}

			data, err := json.MarshalIndent(s.player.Machine(), "", "  ")
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

// replay posts each named event. Unknown names and contract violations stop
// the replay; ignored events do not.
func (s *session) replay(out io.Writer, names []string) error {
	for _, name := range names {
		event, err := playback.ParseEvent(name)
		if err != nil {
			return err
		}

		if err := s.player.Post(event); err != nil {
			var queued *playback.ErrEventQueued
			if errors.As(err, &queued) {
				s.log.Error().Err(err).Msg("contract violation")
			}

			return err
		}

		fmt.Fprintf(out, "%-12s %s\n", event, s.player.Machine().State())
	}

	return nil
}

func (s *session) writeMetrics(out io.Writer) error {
	if s.registry == nil {
		return nil
	}

	families, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	fmt.Fprintln(out)

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}

	return nil
}
