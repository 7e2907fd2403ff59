package coordinator

import (
	"time"

	"mindfulpause/internal/core/activity"
	"mindfulpause/internal/core/clock"
	"mindfulpause/internal/core/model"
	"mindfulpause/internal/core/timekeeper"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultPostpone is how far "Postpone" on the warning pushes the big break.
const DefaultPostpone = 5 * time.Minute

// Dependencies are the collaborators of a Coordinator. Nil collaborators are
// replaced with no-op implementations.
type Dependencies struct {
	Clock     clock.Clock
	Idle      activity.IdleProvider
	Activity  activity.Config
	Presenter Presenter
	Sound     SoundPlayer
	Input     InputLocker
	Practices PracticeSource
	Postpone  time.Duration
	OnQuit    func()
}

// Coordinator owns the application mode, the pause session and the
// schedules. It is not safe for concurrent use: every method, and every
// timer callback of the clock it is given, must run on one dispatch loop.
type Coordinator struct {
	clock     clock.Clock
	keeper    *timekeeper.TimeKeeper
	tracker   *activity.Tracker
	presenter Presenter
	sound     SoundPlayer
	input     InputLocker
	practices PracticeSource
	postpone  time.Duration
	onQuit    func()

	settings        model.Settings
	settingsPending bool
	mode            Mode
	session         *Session
	inputBlocked    bool
	warningPending  bool
	stopped         bool

	disable      *deadline
	warningTimer *deadline
	sessionTimer *deadline

	logger zerolog.Logger
}

// New wires a coordinator with its own TimeKeeper and activity Tracker.
// Nothing is scheduled until Start is called.
func New(deps Dependencies, settings model.Settings, logger zerolog.Logger) *Coordinator {
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Presenter == nil {
		deps.Presenter = noopPresenter{}
	}
	if deps.Sound == nil {
		deps.Sound = noopSound{}
	}
	if deps.Input == nil {
		deps.Input = noopInput{}
	}
	if deps.Practices == nil {
		deps.Practices = fallbackPractices{}
	}
	if deps.Postpone <= 0 {
		deps.Postpone = DefaultPostpone
	}

	coordinator := &Coordinator{
		clock:        deps.Clock,
		presenter:    deps.Presenter,
		sound:        deps.Sound,
		input:        deps.Input,
		practices:    deps.Practices,
		postpone:     deps.Postpone,
		onQuit:       deps.OnQuit,
		settings:     settings,
		mode:         ModeNormal,
		disable:      newDeadline(deps.Clock),
		warningTimer: newDeadline(deps.Clock),
		sessionTimer: newDeadline(deps.Clock),
		logger:       logger.With().Str("component", "coordinator").Logger(),
	}
	coordinator.keeper = timekeeper.New(deps.Clock, timekeeper.Handlers{
		OnBigBreak:   coordinator.onBigBreakDue,
		OnShortPause: coordinator.onShortPauseDue,
		OnWarning:    coordinator.onWarningDue,
	}, logger)
	coordinator.tracker = activity.NewTracker(deps.Clock, deps.Idle, deps.Activity, activity.Handlers{
		OnInactive: coordinator.onUserInactive,
		OnActive:   coordinator.onUserActive,
	}, logger)
	return coordinator
}

// Start applies the initial settings.
func (coordinator *Coordinator) Start() {
	coordinator.logger.Info().Str("mode", coordinator.mode.String()).Msg("Coordinator started")
	coordinator.apply()
}

// ApplySettings replaces the settings. They take effect immediately in
// Normal mode without a session, otherwise on the next re-apply.
func (coordinator *Coordinator) ApplySettings(settings model.Settings) {
	if coordinator.stopped {
		return
	}
	coordinator.settings = settings
	if coordinator.mode != ModeNormal || coordinator.session != nil {
		coordinator.settingsPending = true
		coordinator.logger.Debug().Msg("Settings stored, applying later")
		return
	}
	coordinator.apply()
}

// Settings returns the settings currently in effect.
func (coordinator *Coordinator) Settings() model.Settings {
	return coordinator.settings
}

// Mode returns the current application mode.
func (coordinator *Coordinator) Mode() Mode {
	return coordinator.mode
}

// Status returns a view of the mode, session and schedules.
func (coordinator *Coordinator) Status() Status {
	status := Status{
		Mode:           coordinator.mode,
		WarningPending: coordinator.warningPending,
		Schedules:      coordinator.keeper.Snapshot(),
	}
	if coordinator.disable.armed() {
		status.DisabledUntil = coordinator.disable.at
	}
	if coordinator.session != nil {
		session := *coordinator.session
		status.Session = &session
	}
	return status
}

// TogglePause enters or leaves the user pause.
func (coordinator *Coordinator) TogglePause() {
	if coordinator.stopped {
		return
	}
	switch coordinator.mode {
	case ModeUserPaused:
		if coordinator.disable.armed() {
			coordinator.setMode(ModeTemporarilyDisabled)
			return
		}
		coordinator.setMode(ModeNormal)
		coordinator.apply()
	default:
		coordinator.setMode(ModeUserPaused)
		coordinator.suspend()
	}
}

// DisableFor suspends every reminder for the given number of hours.
// Calling it again re-arms the deadline.
func (coordinator *Coordinator) DisableFor(hours int) {
	if coordinator.stopped || hours <= 0 {
		return
	}
	duration := time.Duration(hours) * time.Hour
	coordinator.setMode(ModeTemporarilyDisabled)
	coordinator.suspend()
	coordinator.disable.arm(duration, coordinator.onDisableExpired)
	coordinator.logger.Info().
		Int("hours", hours).
		Time("until", coordinator.disable.at).
		Msg("Reminders temporarily disabled")
}

// TriggerBigBreak starts a big break now unless a session is running.
func (coordinator *Coordinator) TriggerBigBreak() {
	if coordinator.stopped {
		return
	}
	coordinator.startBigBreak("manual")
}

// TriggerShortPause starts a short pause now unless a session is running.
func (coordinator *Coordinator) TriggerShortPause() {
	if coordinator.stopped {
		return
	}
	coordinator.startShortPause("manual")
}

// WarningStartNow starts the announced big break without waiting.
func (coordinator *Coordinator) WarningStartNow() {
	if coordinator.stopped {
		return
	}
	coordinator.startBigBreak("warning")
}

// WarningPostponed dismisses the warning and moves the big break by the
// postpone offset.
func (coordinator *Coordinator) WarningPostponed() {
	if coordinator.stopped {
		return
	}
	coordinator.dismissWarning()
	if coordinator.mode != ModeNormal || coordinator.session != nil {
		return
	}
	coordinator.keeper.Postpone(coordinator.postpone)
}

// SessionEnded closes the session with the given ID. Reports for a session
// that is no longer current are ignored.
func (coordinator *Coordinator) SessionEnded(sessionID string, interrupted bool) {
	if coordinator.stopped || coordinator.session == nil || coordinator.session.ID != sessionID {
		return
	}
	coordinator.endSession(interrupted)
}

// Quit stops every timer and releases the input lock.
func (coordinator *Coordinator) Quit() {
	if coordinator.stopped {
		return
	}
	coordinator.stopped = true
	coordinator.keeper.StopAll()
	coordinator.tracker.Disable()
	coordinator.disable.cancel()
	coordinator.dismissWarning()
	if coordinator.session != nil {
		coordinator.sessionTimer.cancel()
		coordinator.session = nil
		coordinator.presenter.CloseSession()
	}
	coordinator.releaseInput()
	coordinator.logger.Info().Msg("Coordinator stopped")
	if coordinator.onQuit != nil {
		coordinator.onQuit()
	}
}

func (coordinator *Coordinator) apply() {
	if coordinator.stopped || coordinator.mode != ModeNormal {
		return
	}
	if coordinator.session != nil {
		// Rebuilt when the session ends.
		coordinator.settingsPending = true
		return
	}
	settings := coordinator.settings
	coordinator.settingsPending = false
	coordinator.dismissWarning()
	coordinator.keeper.StopAll()

	if settings.BigBreakEnabled {
		coordinator.keeper.SetWarningLead(settings.WarningLead())
		coordinator.keeper.StartBigBreak(settings.BigBreakInterval)
	}
	if settings.ShortPauseEnabled {
		coordinator.keeper.StartShortPause(settings.ShortPauseInterval)
	}
	coordinator.tracker.SetEnabled(settings.TrackActivity)

	coordinator.logger.Info().
		Bool("big_break", settings.BigBreakEnabled).
		Dur("big_break_interval", settings.BigBreakInterval).
		Bool("short_pause", settings.ShortPauseEnabled).
		Dur("short_pause_interval", settings.ShortPauseInterval).
		Dur("warning_lead", settings.WarningLead()).
		Bool("track_activity", settings.TrackActivity).
		Msg("Settings applied")
}

// suspend stops every schedule and the tracker when leaving Normal mode.
func (coordinator *Coordinator) suspend() {
	coordinator.keeper.StopAll()
	coordinator.tracker.Disable()
	coordinator.dismissWarning()
}

func (coordinator *Coordinator) setMode(mode Mode) {
	if coordinator.mode == mode {
		return
	}
	coordinator.logger.Info().
		Str("from", coordinator.mode.String()).
		Str("to", mode.String()).
		Msg("Mode changed")
	coordinator.mode = mode
}

func (coordinator *Coordinator) onDisableExpired() {
	if coordinator.stopped {
		return
	}
	if coordinator.mode != ModeTemporarilyDisabled {
		coordinator.logger.Info().Str("mode", coordinator.mode.String()).Msg("Disable period over, user pause kept")
		return
	}
	coordinator.setMode(ModeNormal)
	coordinator.apply()
}

func (coordinator *Coordinator) onBigBreakDue() {
	if coordinator.stopped || coordinator.session != nil {
		return
	}
	switch {
	case coordinator.warningPending:
		coordinator.startBigBreak("schedule")
	case coordinator.settings.WarningLead() > 0:
		coordinator.showWarning()
	default:
		coordinator.startBigBreak("schedule")
	}
}

func (coordinator *Coordinator) onShortPauseDue() {
	if coordinator.stopped {
		return
	}
	coordinator.startShortPause("schedule")
}

func (coordinator *Coordinator) onWarningDue() {
	if coordinator.stopped || coordinator.session != nil || coordinator.mode != ModeNormal {
		return
	}
	coordinator.showWarning()
}

func (coordinator *Coordinator) onUserInactive() {
	if coordinator.stopped || coordinator.mode != ModeNormal || coordinator.session != nil {
		return
	}
	coordinator.keeper.PauseAll()
	coordinator.logger.Info().Msg("User away, schedules paused")
}

func (coordinator *Coordinator) onUserActive() {
	if coordinator.stopped || coordinator.mode != ModeNormal || coordinator.session != nil {
		return
	}
	coordinator.keeper.ResumeAll()
	coordinator.logger.Info().Msg("User back, schedules resumed")
}

func (coordinator *Coordinator) showWarning() {
	if coordinator.warningPending {
		return
	}
	countdown := coordinator.settings.WarningTime
	if countdown <= 0 {
		coordinator.startBigBreak("schedule")
		return
	}
	coordinator.warningPending = true
	coordinator.warningTimer.arm(countdown, func() {
		if coordinator.stopped || !coordinator.warningPending {
			return
		}
		coordinator.startBigBreak("warning")
	})
	coordinator.logger.Info().Dur("countdown", countdown).Msg("Big break warning shown")
	coordinator.presenter.ShowWarning(countdown)
}

func (coordinator *Coordinator) dismissWarning() {
	coordinator.warningTimer.cancel()
	if !coordinator.warningPending {
		return
	}
	coordinator.warningPending = false
	coordinator.presenter.DismissWarning()
}

func (coordinator *Coordinator) startBigBreak(trigger string) {
	if coordinator.session != nil {
		coordinator.logger.Debug().Str("trigger", trigger).Msg("Big break dropped, session in progress")
		return
	}
	coordinator.dismissWarning()
	coordinator.keeper.StopAll()

	settings := coordinator.settings
	session := Session{
		ID:        uuid.NewString(),
		Kind:      SessionBig,
		Strict:    settings.StrictMode,
		Text:      coordinator.practices.RandomPractice(),
		StartedAt: coordinator.clock.Now(),
		Duration:  settings.BigBreakDuration,
		Darken:    true,
	}
	if session.Strict {
		coordinator.blockInput()
	} else {
		coordinator.releaseInput()
	}
	coordinator.beginSession(session, trigger)
}

func (coordinator *Coordinator) startShortPause(trigger string) {
	if coordinator.session != nil {
		coordinator.logger.Debug().Str("trigger", trigger).Msg("Short pause dropped, session in progress")
		return
	}
	coordinator.dismissWarning()
	coordinator.keeper.PauseAll()

	settings := coordinator.settings
	session := Session{
		ID:        uuid.NewString(),
		Kind:      SessionShort,
		Text:      coordinator.practices.RandomMicroPractice(),
		StartedAt: coordinator.clock.Now(),
		Duration:  settings.ShortPauseDuration,
		Darken:    settings.DarkenShortPause,
	}
	if settings.SoundStartEnabled {
		coordinator.sound.PlayStart()
	}
	coordinator.beginSession(session, trigger)
}

func (coordinator *Coordinator) beginSession(session Session, trigger string) {
	coordinator.session = &session
	id := session.ID
	coordinator.sessionTimer.arm(session.Duration, func() {
		if coordinator.stopped || coordinator.session == nil || coordinator.session.ID != id {
			return
		}
		coordinator.endSession(false)
	})
	coordinator.logger.Info().
		Str("session", session.ID).
		Str("kind", string(session.Kind)).
		Bool("strict", session.Strict).
		Dur("duration", session.Duration).
		Str("trigger", trigger).
		Msg("Pause session started")
	coordinator.presenter.ShowSession(session)
}

func (coordinator *Coordinator) endSession(interrupted bool) {
	session := *coordinator.session
	coordinator.session = nil
	coordinator.sessionTimer.cancel()
	coordinator.presenter.CloseSession()
	restart := session.Kind == SessionBig && session.Strict && interrupted
	if !restart {
		coordinator.releaseInput()
	}
	coordinator.logger.Info().
		Str("session", session.ID).
		Str("kind", string(session.Kind)).
		Bool("interrupted", interrupted).
		Dur("elapsed", coordinator.clock.Now().Sub(session.StartedAt)).
		Msg("Pause session ended")

	switch {
	case restart:
		coordinator.startBigBreak("strict_restart")
	case session.Kind == SessionBig:
		if !interrupted && coordinator.settings.SoundEnabled {
			coordinator.sound.PlayEnd()
		}
		coordinator.apply()
	default:
		coordinator.resumeAfterShortPause()
	}
}

// resumeAfterShortPause continues the big break from where the short pause
// froze it and starts a fresh short-pause countdown. A big break that is no
// longer frozen is restarted from its interval.
func (coordinator *Coordinator) resumeAfterShortPause() {
	if coordinator.mode != ModeNormal {
		return
	}
	if coordinator.settingsPending {
		coordinator.apply()
		return
	}
	settings := coordinator.settings
	if settings.BigBreakEnabled {
		coordinator.keeper.ResumeBigBreak()
		if !coordinator.keeper.Snapshot().BigBreak.Active {
			coordinator.keeper.ResetBigBreak()
		}
	} else {
		coordinator.keeper.StopBigBreak()
	}
	if settings.ShortPauseEnabled {
		coordinator.keeper.ResetShortPause()
	} else {
		coordinator.keeper.StopShortPause()
	}
}

func (coordinator *Coordinator) blockInput() {
	if coordinator.inputBlocked {
		return
	}
	if err := coordinator.input.Block(); err != nil {
		coordinator.logger.Warn().Err(err).Msg("Failed to block input for strict break")
		return
	}
	coordinator.inputBlocked = true
}

func (coordinator *Coordinator) releaseInput() {
	if !coordinator.inputBlocked {
		return
	}
	coordinator.inputBlocked = false
	if err := coordinator.input.Unblock(); err != nil {
		coordinator.logger.Warn().Err(err).Msg("Failed to unblock input")
	}
}
