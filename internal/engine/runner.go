// Turn runner — paced loop driving a court forward in real time.
package engine

import (
	"log/slog"
	"time"
)

// Runner drives turn processing at a configurable pace.
type Runner struct {
	Turn     uint64        // most recently driven turn (monotonic)
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // base turn interval
	Running  bool

	// OnTurn is invoked once per turn. Populated during setup.
	OnTurn func(turn uint64)
}

// NewRunner creates a runner with default pacing.
func NewRunner() *Runner {
	return &Runner{
		Speed:    1.0,
		Interval: time.Second,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (r *Runner) Run() {
	r.Running = true
	slog.Info("turn runner started", "turn", r.Turn, "speed", r.Speed)

	for r.Running {
		if r.Speed <= 0 {
			// Paused — sleep briefly and check again.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()

		r.Turn++
		if r.OnTurn != nil {
			r.OnTurn(r.Turn)
		}

		// Sleep for the remainder of the interval, adjusted for speed.
		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / r.Speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}

	slog.Info("turn runner stopped", "turn", r.Turn)
}

// Stop halts the loop after the current turn.
func (r *Runner) Stop() {
	r.Running = false
}
