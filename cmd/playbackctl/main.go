// Command playbackctl drives a simulated player through the playback state
// machine. It renders the transition graph, replays event scripts and offers
// an interactive prompt.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
