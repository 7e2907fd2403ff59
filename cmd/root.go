package main

import (
	"fmt"
	"os"

	"mindfulpause/internal/config"

	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

// rootCmd starts the tray application when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "mindfulpause",
	Short: "MindfulPause - a mindful break reminder living in the system tray",
	Long: `MindfulPause reminds you to take short mindful pauses and regular big
breaks. It runs in the system tray, warns before big breaks, pauses its timers
while you are away from the computer and can be disabled for a few hours.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "Path to configuration file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
