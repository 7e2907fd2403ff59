package timekeeper

import "time"

// Kind identifies one of the three schedules.
type Kind string

const (
	KindBigBreak   Kind = "big_break"
	KindShortPause Kind = "short_pause"
	KindWarning    Kind = "warning"
)

func (kind Kind) String() string {
	return string(kind)
}

// Handlers receive schedule fire events. Each handler runs after the
// TimeKeeper has released its lock, so handlers may call back into it.
type Handlers struct {
	OnBigBreak   func()
	OnShortPause func()
	OnWarning    func()
}

// ScheduleState is a point-in-time view of one schedule.
type ScheduleState struct {
	Kind      Kind
	Interval  time.Duration
	Remaining time.Duration
	Active    bool
	Paused    bool
}

// Snapshot is a point-in-time view of every schedule.
type Snapshot struct {
	BigBreak    ScheduleState
	ShortPause  ScheduleState
	Warning     ScheduleState
	WarningLead time.Duration
}
