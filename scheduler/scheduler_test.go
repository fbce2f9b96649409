package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now float64 }

func (c *fakeClock) Now() float64 { return c.now }

func TestStartTicks(t *testing.T) {
	clk := &fakeClock{now: 10}
	s := New(clk.Now)
	assert.Equal(t, Idle, s.State())
	assert.False(t, s.Tick())

	var got []float64
	s.Start(func(ms float64) { got = append(got, ms) })
	assert.Equal(t, Running, s.State())

	for i := 0; i < 3; i++ {
		clk.now += 0.5
		require.True(t, s.Tick())
	}
	assert.Equal(t, []float64{500, 1000, 1500}, got)
}

func TestStopAllowsOneMoreTick(t *testing.T) {
	clk := &fakeClock{}
	s := New(clk.Now)
	calls := 0
	s.Start(func(float64) { calls++ })
	require.True(t, s.Tick())

	s.Stop()
	assert.Equal(t, Running, s.State())
	assert.False(t, s.Tick())
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, 1, calls)

	assert.False(t, s.Tick())
	assert.Equal(t, 1, calls)
}

func TestStopIdempotent(t *testing.T) {
	once := New((&fakeClock{}).Now)
	twice := New((&fakeClock{}).Now)
	var onceCalls, twiceCalls int
	once.Start(func(float64) { onceCalls++ })
	twice.Start(func(float64) { twiceCalls++ })

	once.Stop()
	twice.Stop()
	twice.Stop()

	assert.Equal(t, once.Tick(), twice.Tick())
	assert.Equal(t, once.State(), twice.State())
	assert.Equal(t, onceCalls, twiceCalls)
}

func TestSetCallbackNilStops(t *testing.T) {
	s := New((&fakeClock{}).Now)
	s.Start(func(float64) {})
	s.SetCallback(nil)
	assert.False(t, s.Tick())
	assert.Equal(t, Idle, s.State())
}

func TestSetCallbackSwaps(t *testing.T) {
	s := New((&fakeClock{}).Now)
	var first, second int
	s.Start(func(float64) { first++ })
	s.Tick()
	s.SetCallback(func(float64) { second++ })
	s.Tick()
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestRestartAfterStop(t *testing.T) {
	clk := &fakeClock{now: 1}
	s := New(clk.Now)
	s.Start(func(float64) {})
	s.Stop()
	s.Tick()
	require.Equal(t, Idle, s.State())

	clk.now = 4
	var elapsed float64
	s.Start(func(ms float64) { elapsed = ms })
	clk.now = 4.25
	require.True(t, s.Tick())
	assert.Equal(t, 250.0, elapsed)
}

func TestStartWhileRunningKeepsTime(t *testing.T) {
	clk := &fakeClock{}
	s := New(clk.Now)
	s.Start(func(float64) {})
	clk.now = 2
	var elapsed float64
	s.Start(func(ms float64) { elapsed = ms })
	s.Tick()
	assert.Equal(t, 2000.0, elapsed)
}

func TestRunStopsOnCancel(t *testing.T) {
	s := New((&fakeClock{}).Now)
	ctx, cancel := context.WithCancel(context.Background())
	frames, refreshes := 0, 0
	s.Start(func(float64) {
		frames++
		if frames == 3 {
			cancel()
		}
	})
	s.Run(ctx, func() { refreshes++ })
	assert.Equal(t, 3, frames)
	assert.Equal(t, 3, refreshes)
	assert.Equal(t, Idle, s.State())
}

func TestRunStopsOnStop(t *testing.T) {
	s := New((&fakeClock{}).Now)
	frames := 0
	s.Start(func(float64) {
		frames++
		if frames == 5 {
			s.Stop()
		}
	})
	s.Run(context.Background(), func() {})
	assert.Equal(t, 5, frames)
}
