package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdownUntil(t *testing.T) {
	start := time.Date(2025, 12, 24, 23, 59, 59, 0, time.UTC)

	t.Run("one second before start", func(t *testing.T) {
		c := CountdownUntil(start, start.Add(-1*time.Second))
		assert.Equal(t, Countdown{Days: 0, Hours: 0, Minutes: 0, Seconds: 1}, c)
	})

	t.Run("after start clamps to zero", func(t *testing.T) {
		c := CountdownUntil(start, start.Add(48*time.Hour))
		assert.Equal(t, Countdown{}, c)
	})

	t.Run("exact start is zero", func(t *testing.T) {
		c := CountdownUntil(start, start)
		assert.Equal(t, Countdown{}, c)
	})

	t.Run("full decomposition", func(t *testing.T) {
		now := start.Add(-(73*time.Hour + 2*time.Minute + 5*time.Second))
		c := CountdownUntil(start, now)
		assert.Equal(t, Countdown{Days: 3, Hours: 1, Minutes: 2, Seconds: 5}, c)
	})

	t.Run("formatted string", func(t *testing.T) {
		c := Countdown{Days: 3, Hours: 1, Minutes: 2, Seconds: 5}
		assert.Equal(t, "3 days, 1 hours, 2 minutes, 5 seconds", c.String())
	})
}
