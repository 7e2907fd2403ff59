package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindfulpause/internal/config"
	"mindfulpause/internal/core/activity"
	"mindfulpause/internal/core/clock"
	"mindfulpause/internal/core/coordinator"
	"mindfulpause/internal/core/dispatch"
	"mindfulpause/internal/core/model"
	"mindfulpause/internal/platform"
	"mindfulpause/internal/storage"
	"mindfulpause/internal/ui/overlay"
	"mindfulpause/internal/ui/preferences"
	"mindfulpause/internal/ui/tray"
	"mindfulpause/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	appID         = "app.mindfulpause"
	trayRefresh   = 5 * time.Second
	dispatchQueue = 64
)

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", version).
		Str("config", configPath).
		Str("data_dir", cfg.DataDir).
		Msg("Starting MindfulPause")

	lock, err := platform.AcquireInstanceLock(config.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Warn().Err(err).Msg("Another instance is already running")
			return nil
		}
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Error().Err(err).Msg("Failed to release instance lock")
		}
	}()

	settingsStore := storage.NewSettingsStore(cfg.DataDir, logger)
	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	practiceStore := storage.NewPracticeStore(cfg.DataDir, logger)
	if err := practiceStore.EnsureDefaults(); err != nil {
		logger.Warn().Err(err).Msg("Failed to write default practices")
	}

	autostart, err := platform.NewAutostart(config.AppName, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("Autostart unavailable")
	}
	applyAutostart(autostart, settings.Autostart, logger)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.AppIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := dispatch.New(logger, dispatchQueue)
	uiDone := make(chan struct{})
	var coord *coordinator.Coordinator

	pauseWindow := overlay.New(fyneApp, overlay.DefaultConfig(), func(sessionID string) {
		loop.Post(func() { coord.SessionEnded(sessionID, true) })
	})
	warningWindow := overlay.NewWarningWindow(fyneApp, cfg.Warning.Postpone, overlay.WarningActions{
		OnPostpone: func() { loop.Post(coord.WarningPostponed) },
		OnStartNow: func() { loop.Post(coord.WarningStartNow) },
	})

	idle := platform.NewIdleProvider(logger)
	if closer, ok := idle.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	coord = coordinator.New(coordinator.Dependencies{
		Clock: loop.Clock(clock.Real{}),
		Idle:  idle,
		Activity: activity.Config{
			Timeout:      cfg.Activity.IdleTimeout,
			PollInterval: cfg.Activity.PollInterval,
		},
		Presenter: overlay.NewPresenter(pauseWindow, warningWindow),
		Sound:     platform.NewSoundPlayer(cfg.Sound.Dir, logger),
		Input:     platform.NewInputLock(logger),
		Practices: practiceStore,
		Postpone:  cfg.Warning.Postpone,
		OnQuit: func() {
			select {
			case <-uiDone:
			default:
				fyne.Do(fyneApp.Quit)
			}
		},
	}, settings, logger)

	prefsWindow := preferences.New(fyneApp, settings, practiceStore, func(updated model.Settings) error {
		if err := settingsStore.Save(updated); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
		loop.Post(func() { coord.ApplySettings(updated) })
		applyAutostart(autostart, updated.Autostart, logger)
		return nil
	})

	trayManager := tray.New(desktopApp, tray.Icons{
		Active: resources.AppIcon(),
		Paused: resources.PausedIcon(),
	}, tray.Callbacks{
		OnBigBreak:    func() { loop.Post(coord.TriggerBigBreak) },
		OnShortPause:  func() { loop.Post(coord.TriggerShortPause) },
		OnTogglePause: func() { loop.Post(coord.TogglePause) },
		OnDisableFor: func(hours int) {
			loop.Post(func() { coord.DisableFor(hours) })
		},
		OnPreferences: prefsWindow.Show,
		OnQuit:        func() { loop.Post(coord.Quit) },
	})

	if cfg.WatchSettings {
		watcher, err := storage.NewWatcher(settingsStore.Path(), 0, func() {
			reloadSettings(settingsStore, loop, coord, prefsWindow, autostart, logger)
		}, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Settings file watching disabled")
		} else {
			go watcher.Run(ctx)
		}
	}

	go func() {
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Dispatch loop stopped")
		}
	}()
	go func() {
		<-signals.Done()
		if ctx.Err() != nil {
			return
		}
		logger.Info().Msg("Shutdown signal received")
		loop.Post(coord.Quit)
	}()
	go refreshTray(ctx, loop, coord, trayManager)

	loop.Post(coord.Start)
	fyneApp.Run()
	close(uiDone)

	// The window system may close the app without going through Quit.
	loop.Call(coord.Quit)
	loop.Stop()
	cancel()
	logger.Info().Msg("MindfulPause stopped")
	return nil
}

func refreshTray(ctx context.Context, loop *dispatch.Loop, coord *coordinator.Coordinator, manager *tray.Manager) {
	ticker := time.NewTicker(trayRefresh)
	defer ticker.Stop()
	for {
		var status coordinator.Status
		if !loop.Call(func() { status = coord.Status() }) {
			return
		}
		fyne.Do(func() {
			manager.Update(status, time.Now())
		})

		select {
		case <-ctx.Done():
			return
		case <-loop.Done():
			return
		case <-ticker.C:
		}
	}
}

func reloadSettings(store *storage.SettingsStore, loop *dispatch.Loop, coord *coordinator.Coordinator, prefsWindow *preferences.Window, autostart *platform.Autostart, logger zerolog.Logger) {
	updated, changed, err := store.Reload()
	if err != nil {
		logger.Warn().Err(err).Str("path", store.Path()).Msg("Ignoring unreadable settings file")
		return
	}
	if !changed {
		return
	}
	logger.Info().Str("path", store.Path()).Msg("Settings file changed, applying")
	loop.Post(func() { coord.ApplySettings(updated) })
	fyne.Do(func() { prefsWindow.UpdateSettings(updated) })
	applyAutostart(autostart, updated.Autostart, logger)
}

func applyAutostart(autostart *platform.Autostart, enabled bool, logger zerolog.Logger) {
	if autostart == nil {
		return
	}
	if autostart.Enabled() == enabled {
		return
	}
	if err := autostart.Apply(enabled); err != nil {
		logger.Warn().Err(err).Bool("enabled", enabled).Msg("Failed to update autostart")
	}
}
