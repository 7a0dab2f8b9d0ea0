package domain

import (
	"fmt"
	"time"
)

// Countdown is the remaining time until the event starts, decomposed into
// whole days, hours, minutes and seconds. All components clamp to zero once
// the start time has passed.
type Countdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// CountdownUntil computes the countdown from now to start.
func CountdownUntil(start, now time.Time) Countdown {
	remaining := start.Unix() - now.Unix()
	if remaining < 0 {
		remaining = 0
	}

	days := remaining / 86400
	remaining %= 86400
	hours := remaining / 3600
	remaining %= 3600
	minutes := remaining / 60
	seconds := remaining % 60

	return Countdown{Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}
}

func (c Countdown) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes, %d seconds", c.Days, c.Hours, c.Minutes, c.Seconds)
}
