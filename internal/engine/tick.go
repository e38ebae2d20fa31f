// Package engine provides the frame-paced simulation loop and the per-day
// farm simulation it drives.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// Frame pacing. At speed 1 an in-game day lasts DefaultDayTicks frames
// (30 seconds at 60 frames per second).
const (
	DefaultFrameInterval = time.Second / 60
	DefaultDayTicks      = 1800

	MinSpeed = 1
	MaxSpeed = 5
)

// Engine drives the simulation forward one frame at a time.
type Engine struct {
	Tick     uint64        // Ticks since the current farm started
	Speed    int           // Ticks advanced per frame, MinSpeed..MaxSpeed
	Paused   bool          // Frames still arrive but no ticks advance
	DayTicks uint64        // Ticks per in-game day
	Interval time.Duration // Frame interval

	OnDay func(tick uint64) // Every DayTicks ticks
}

// NewEngine creates an engine with default pacing.
func NewEngine(dayTicks uint64) *Engine {
	if dayTicks == 0 {
		dayTicks = DefaultDayTicks
	}
	return &Engine{
		Speed:    MinSpeed,
		DayTicks: dayTicks,
		Interval: DefaultFrameInterval,
	}
}

// Frame processes one frame: Speed ticks unless paused.
func (e *Engine) Frame() {
	if e.Paused {
		return
	}
	for i := 0; i < e.Speed; i++ {
		e.step()
	}
}

// step advances the simulation by one tick.
func (e *Engine) step() {
	e.Tick++
	if e.DayTicks > 0 && e.Tick%e.DayTicks == 0 && e.OnDay != nil {
		e.OnDay(e.Tick)
	}
}

// Run paces frames until ctx is cancelled. It blocks the calling goroutine;
// there is no other goroutine touching simulation state.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("simulation engine started", "tick", e.Tick, "speed", e.Speed)

	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation engine stopped", "tick", e.Tick)
			return ctx.Err()
		case <-ticker.C:
			e.Frame()
		}
	}
}

// SpeedUp raises the speed by one, capped at MaxSpeed.
func (e *Engine) SpeedUp() int {
	e.Speed = min(MaxSpeed, e.Speed+1)
	return e.Speed
}

// SlowDown lowers the speed by one, floored at MinSpeed.
func (e *Engine) SlowDown() int {
	e.Speed = max(MinSpeed, e.Speed-1)
	return e.Speed
}
