package viewer

import "time"

// WheelRelease is how long a wheel label stays highlighted.
const WheelRelease = 100 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler uses the runtime timers.
func RealScheduler() Scheduler {
	return clockScheduler{}
}
