package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiencelink/tvpulse/pkg/buildcfg"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect build-time device configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved device.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := buildcfg.DefaultPath()
		if err != nil {
			return err
		}
		cfg, err := buildcfg.Load(path)
		if err != nil {
			return err
		}
		fmt.Printf("config file: %s\n", path)
		fmt.Printf("device_id:   %s\n", cfg.DeviceID)
		fmt.Printf("server_url:  %s\n", cfg.ServerURL)
		fmt.Printf("wifi_ssid:   %s\n", cfg.WifiSSID)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
