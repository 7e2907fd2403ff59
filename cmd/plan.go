package main

import (
	"fmt"
	"time"

	"mindfulpause/internal/core/clock"
	"mindfulpause/internal/core/coordinator"
	"mindfulpause/internal/core/model"

	"github.com/rs/zerolog"
)

// planEntry is one predicted event, relative to application start.
type planEntry struct {
	At    time.Duration
	Event string
}

// planRecorder is a Presenter that writes down what would be shown.
type planRecorder struct {
	clock   *clock.Manual
	start   time.Time
	kind    coordinator.SessionKind
	entries []planEntry
	closed  bool
}

func (recorder *planRecorder) add(event string) {
	if recorder.closed {
		return
	}
	recorder.entries = append(recorder.entries, planEntry{At: recorder.clock.Now().Sub(recorder.start), Event: event})
}

func (recorder *planRecorder) ShowWarning(countdown time.Duration) {
	recorder.add(fmt.Sprintf("warning, big break in %s", countdown))
}

func (recorder *planRecorder) DismissWarning() {}

func (recorder *planRecorder) ShowSession(session coordinator.Session) {
	recorder.kind = session.Kind
	recorder.add(fmt.Sprintf("%s starts for %s", sessionName(session.Kind), session.Duration))
}

func (recorder *planRecorder) CloseSession() {
	recorder.add(fmt.Sprintf("%s ends", sessionName(recorder.kind)))
}

// planSchedule runs the coordinator on a manual clock and reports what it
// would show during horizon, assuming the user stays at the computer and
// lets every pause run to the end.
func planSchedule(settings model.Settings, horizon time.Duration) []planEntry {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	manual := clock.NewManual(start)
	recorder := &planRecorder{clock: manual, start: start}

	settings.TrackActivity = false
	coord := coordinator.New(coordinator.Dependencies{
		Clock:     manual,
		Presenter: recorder,
	}, settings, zerolog.Nop())
	coord.Start()
	manual.Advance(horizon)
	recorder.closed = true
	coord.Quit()

	return recorder.entries
}

func sessionName(kind coordinator.SessionKind) string {
	if kind == coordinator.SessionBig {
		return "big break"
	}
	return "short pause"
}

func formatOffset(offset time.Duration) string {
	total := int(offset / time.Second)
	return fmt.Sprintf("+%d:%02d:%02d", total/3600, total/60%60, total%60)
}
