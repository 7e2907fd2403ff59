package coordinator

import (
	"time"

	"mindfulpause/internal/core/timekeeper"
)

// Mode is the overall application mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeUserPaused
	ModeTemporarilyDisabled
)

func (mode Mode) String() string {
	switch mode {
	case ModeNormal:
		return "normal"
	case ModeUserPaused:
		return "user_paused"
	case ModeTemporarilyDisabled:
		return "temporarily_disabled"
	default:
		return "unknown"
	}
}

// SessionKind distinguishes short pauses from big breaks.
type SessionKind string

const (
	SessionShort SessionKind = "short"
	SessionBig   SessionKind = "big"
)

// Session is an in-progress pause overlay.
type Session struct {
	ID        string
	Kind      SessionKind
	Strict    bool
	Text      string
	StartedAt time.Time
	Duration  time.Duration
	Darken    bool
}

// EndsAt returns the time the session completes on its own.
func (session Session) EndsAt() time.Time {
	return session.StartedAt.Add(session.Duration)
}

// Presenter shows and hides the overlays. Calls are made from the dispatch
// loop and must not block; the presenter reports user actions back by
// posting coordinator calls onto the loop.
type Presenter interface {
	ShowWarning(countdown time.Duration)
	DismissWarning()
	ShowSession(session Session)
	CloseSession()
}

// SoundPlayer plays the optional cue sounds.
type SoundPlayer interface {
	PlayStart()
	PlayEnd()
}

// InputLocker blocks keyboard and mouse input during strict big breaks.
type InputLocker interface {
	Block() error
	Unblock() error
}

// PracticeSource supplies the texts shown inside pause overlays.
type PracticeSource interface {
	RandomPractice() string
	RandomMicroPractice() string
}

// Status is a point-in-time view of the coordinator for the tray and the CLI.
type Status struct {
	Mode           Mode
	DisabledUntil  time.Time
	Session        *Session
	WarningPending bool
	Schedules      timekeeper.Snapshot
}

// NextBreak returns the earliest running countdown and its kind.
func (status Status) NextBreak() (timekeeper.Kind, time.Duration, bool) {
	var (
		kind  timekeeper.Kind
		next  time.Duration
		found bool
	)
	for _, state := range []timekeeper.ScheduleState{status.Schedules.BigBreak, status.Schedules.ShortPause} {
		if !state.Active {
			continue
		}
		if !found || state.Remaining < next {
			kind, next, found = state.Kind, state.Remaining, true
		}
	}
	return kind, next, found
}

type noopPresenter struct{}

func (noopPresenter) ShowWarning(time.Duration) {}
func (noopPresenter) DismissWarning()           {}
func (noopPresenter) ShowSession(Session)       {}
func (noopPresenter) CloseSession()             {}

type noopSound struct{}

func (noopSound) PlayStart() {}
func (noopSound) PlayEnd()   {}

type noopInput struct{}

func (noopInput) Block() error   { return nil }
func (noopInput) Unblock() error { return nil }

const (
	fallbackPractice      = "Stand up, stretch and look out of the window."
	fallbackMicroPractice = "Take three slow, deep breaths."
)

type fallbackPractices struct{}

func (fallbackPractices) RandomPractice() string      { return fallbackPractice }
func (fallbackPractices) RandomMicroPractice() string { return fallbackMicroPractice }
