package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/enetx/playback"
	"github.com/spf13/cobra"
)

// lineReader is the part of *readline.Instance used by the prompt loop.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func newReplCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Post events interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var items []readline.PrefixCompleterInterface
			for event := range playback.Events().Iter() {
				items = append(items, readline.PcItem(string(event)))
			}

			for _, command := range []string{"state", "history", "dot", "help", "quit"} {
				items = append(items, readline.PcItem(command))
			}

			rl, err := readline.NewEx(&readline.Config{
				AutoComplete:    readline.NewPrefixCompleter(items...),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			if err := s.repl(rl, cmd.OutOrStdout()); err != nil {
				return err
			}

			return s.writeMetrics(cmd.OutOrStdout())
		},
	}
}

// repl reads commands until quit, EOF or interrupt. Rejected events are
// reported and the loop continues.
func (s *session) repl(rl lineReader, out io.Writer) error {
	for {
		m := s.player.Machine()
		rl.SetPrompt(fmt.Sprintf("%s> ", m.State()))

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		switch input := strings.TrimSpace(line); input {
		case "":
		case "quit", "exit":
			return nil
		case "state":
			fmt.Fprintln(out, m.State())
		case "history":
			fmt.Fprintln(out, m.History().Join(" -> "))
		case "dot":
			fmt.Fprint(out, m.ToDOT())
		case "help":
			fmt.Fprintf(out, "events: %s\ncommands: state history dot quit\n", playback.Events().Join(" "))
		default:
			event, err := playback.ParseEvent(input)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			before := m.State()
			if err := s.player.Post(event); err != nil {
				fmt.Fprintln(out, err)
				continue
			}

			if after := m.State(); after == before {
				fmt.Fprintf(out, "%s ignored in %s\n", event, before)
			} else {
				fmt.Fprintf(out, "%s -> %s\n", before, after)
			}
		}
	}
}
