// Command tvpulse runs the audience-measurement sensor: it captures
// ambient audio, fingerprints it, and publishes fingerprints to a
// remote aggregator.
//
// Usage:
//
//	tvpulse run [flags]
//	tvpulse config show
//	tvpulse version
package main

import (
	"fmt"
	"os"

	"github.com/audiencelink/tvpulse/cmd/tvpulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
