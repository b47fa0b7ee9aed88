package vsched_test

import (
	"testing"
	"time"

	"github.com/romshark/vsched"

	"github.com/stretchr/testify/require"
)

func TestVirtualClock(t *testing.T) {
	c := vsched.NewVirtualClock(start)
	require.Equal(t, start, c.Now())
	require.Equal(t, time.Date(2021, 6, 20, 0, 0, 0, 0, time.UTC), c.Today())
	require.Zero(t, c.Offset())

	require.Equal(t, 15*time.Hour, c.AdvanceTime(15*time.Hour))
	require.Equal(t, start.Add(15*time.Hour), c.Now())
	require.Equal(t, time.Date(2021, 6, 21, 0, 0, 0, 0, time.UTC), c.Today())

	// Never goes backwards.
	require.Equal(t, 15*time.Hour, c.AdvanceTime(-time.Hour))
	require.False(t, c.Set(start))
	require.Equal(t, start.Add(15*time.Hour), c.Now())

	require.True(t, c.Set(start.Add(20*time.Hour)))
	require.Equal(t, start.Add(20*time.Hour), c.Now())
	require.Equal(t, 20*time.Hour, c.Offset())
}

func TestVirtualClockTodayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	c := vsched.NewVirtualClock(time.Date(2021, 6, 20, 2, 0, 0, 0, loc))
	require.Equal(t, time.Date(2021, 6, 20, 0, 0, 0, 0, loc), c.Today())
}

func TestWallClock(t *testing.T) {
	var c vsched.WallClock
	before := time.Now()
	now := c.Now()
	require.False(t, now.Before(before))

	today := c.Today()
	require.Zero(t, today.Hour())
	require.Zero(t, today.Minute())
	require.Zero(t, today.Second())
	require.Zero(t, today.Nanosecond())
}
