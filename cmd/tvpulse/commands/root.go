package commands

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tvpulse",
	Short: "Ambient-audio audience measurement sensor",
	Long: `tvpulse captures ambient TV audio, fingerprints it on-device, and
publishes fingerprints to a remote aggregator over HTTPS.

Build-time constants (device ID, server URL, network credentials) are
read from ~/.tvpulse/device.yaml, or the path named by $TVPULSE_CONFIG.

Examples:
  tvpulse run
  tvpulse run --source=synth --web-port=8088
  tvpulse config show`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
