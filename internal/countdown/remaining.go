package countdown

import "time"

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Remaining is a non-negative duration split into calendar-free units.
type Remaining struct {
	Days         int64 `json:"days"`
	Hours        int64 `json:"hours"`
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	Milliseconds int64 `json:"milliseconds"`
}

// Decompose splits diff by floor division into days, hours, minutes, seconds
// and milliseconds, each unit taken from the remainder of the previous one.
// Non-positive durations decompose to the zero value.
func Decompose(diff time.Duration) Remaining {
	ms := diff.Milliseconds()
	if ms <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:         ms / msPerDay,
		Hours:        (ms % msPerDay) / msPerHour,
		Minutes:      (ms % msPerHour) / msPerMinute,
		Seconds:      (ms % msPerMinute) / msPerSecond,
		Milliseconds: ms % msPerSecond,
	}
}

// TotalSeconds folds the whole-second units back into a count of seconds.
func (r Remaining) TotalSeconds() int64 {
	return r.Days*86400 + r.Hours*3600 + r.Minutes*60 + r.Seconds
}

// Centiseconds is the two-digit sub-second field shown by the page.
func (r Remaining) Centiseconds() int64 {
	return r.Milliseconds / 10
}

// IsZero reports whether every unit is zero.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}
