package main

import (
	"fmt"
	"time"

	"mindfulpause/internal/config"
	"mindfulpause/internal/core/model"
	"mindfulpause/internal/platform"
	"mindfulpause/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkHorizon time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show the effective configuration and the upcoming breaks",
	Long: `Load the configuration and the settings file the way the tray application
does, then print them together with the breaks that would be shown over the
next hours if you stayed at the computer.`,
	Example: `  mindfulpause check
  mindfulpause -c ./config.yaml check --horizon 4h`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&checkHorizon, "horizon", 3*time.Hour, "How far ahead to plan")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkHorizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %s", checkHorizon)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := quietLogger()

	store := storage.NewSettingsStore(cfg.DataDir, logger)
	settings, readErr := store.Read()

	autostartEnabled := false
	if autostart, err := platform.NewAutostart(config.AppName, logger); err == nil {
		autostartEnabled = autostart.Enabled()
	}

	printCheck(cfg, store.Path(), settings, readErr, autostartEnabled, planSchedule(settings, checkHorizon))
	return nil
}

func printCheck(cfg *config.Config, settingsPath string, settings model.Settings, readErr error, autostartEnabled bool, plan []planEntry) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	fmt.Println()
	cyan.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	cyan.Println("MINDFULPAUSE CHECK")
	cyan.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	fmt.Printf("Config:         %s\n", configPath)
	fmt.Printf("Data dir:       %s\n", cfg.DataDir)
	fmt.Printf("Settings file:  %s\n", settingsPath)
	fmt.Printf("Sound dir:      %s\n", cfg.Sound.Dir)
	fmt.Printf("Idle timeout:   %s (poll every %s)\n", cfg.Activity.IdleTimeout, cfg.Activity.PollInterval)
	fmt.Printf("Postpone:       %s\n", cfg.Warning.Postpone)
	fmt.Print("Autostart:      ")
	printState(green, yellow, autostartEnabled)
	fmt.Println()

	if readErr != nil {
		red.Print("Settings:       ")
		fmt.Printf("%v\n", readErr)
		fmt.Println("                → built-in defaults are shown; the app will back up and regenerate the file")
		fmt.Println()
	}

	cyan.Println("Settings")
	printSchedule(green, yellow, "Big break", settings.BigBreakEnabled, settings.BigBreakInterval, settings.BigBreakDuration)
	printSchedule(green, yellow, "Short pause", settings.ShortPauseEnabled, settings.ShortPauseInterval, settings.ShortPauseDuration)
	fmt.Print("  Warning:      ")
	if lead := settings.WarningLead(); lead > 0 {
		green.Printf("%s before\n", lead)
	} else {
		yellow.Println("off")
	}
	fmt.Print("  Strict mode:  ")
	printState(green, yellow, settings.StrictMode)
	fmt.Print("  Track idle:   ")
	printState(green, yellow, settings.TrackActivity)
	fmt.Print("  Sounds:       ")
	printState(green, yellow, settings.SoundEnabled)
	fmt.Println()

	cyan.Printf("Plan for the next %s\n", checkHorizon)
	if len(plan) == 0 {
		yellow.Println("  no breaks scheduled")
	}
	for _, entry := range plan {
		fmt.Printf("  %s  %s\n", formatOffset(entry.At), entry.Event)
	}

	fmt.Println()
	cyan.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()
}

func printSchedule(enabled, disabled *color.Color, name string, on bool, interval, duration time.Duration) {
	fmt.Printf("  %-13s ", name+":")
	if !on || interval <= 0 {
		disabled.Println("off")
		return
	}
	enabled.Printf("every %s for %s\n", interval, duration)
}

func printState(enabled, disabled *color.Color, on bool) {
	if on {
		enabled.Println("on")
		return
	}
	disabled.Println("off")
}
