package game

import (
	"context"
	"log"
	"time"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// TIMER MANAGEMENT
// =============================================================================

// GameTimer is the single timer slot a room owns. The drawing countdown,
// the grace delay after everyone guessed, and the word-selection timeout
// all occupy this slot; arming always cancels the previous occupant, so at
// most one timer is ever live per room.
type GameTimer struct {
	StartTime time.Time
	Duration  time.Duration
	IsActive  bool

	ctx    context.Context
	cancel context.CancelFunc
}

// armTimer replaces any live timer with a new one. tick, when non-nil, runs
// once per second while the timer is live; onExpire runs only on natural
// expiry, never on cancellation. Caller must not hold r.Mu.
//
// Cancelling the old occupant and installing the new one happen in one
// critical section: two callers arming concurrently must never leave two
// live timers behind.
func (r *Room) armTimer(duration time.Duration, tick func(), onExpire func()) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)

	r.Mu.Lock()
	if r.Timer != nil && r.Timer.IsActive {
		r.Timer.cancel()
		r.Timer.IsActive = false
	}
	r.Timer = &GameTimer{
		StartTime: time.Now(),
		Duration:  duration,
		IsActive:  true,
		ctx:       ctx,
		cancel:    cancel,
	}
	roomID := r.Id
	r.Mu.Unlock()

	log.Printf("[armTimer] room=%s: timer armed for %v", roomID, duration)

	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if tick != nil {
					tick()
				}

			case <-ctx.Done():
				r.Mu.Lock()
				current := r.Timer != nil && r.Timer.ctx == ctx
				if current {
					r.Timer.IsActive = false
				}
				r.Mu.Unlock()

				// A timer that was replaced in the slot must never fire,
				// even if its deadline passed before the cancel landed.
				if current && ctx.Err() == context.DeadlineExceeded {
					log.Printf("[armTimer] room=%s: timer expired after %v", roomID, duration)
					go onExpire()
				}
				return
			}
		}
	}()
}

// cancelTimer stops the live timer, if any. Safe to call with no timer
// armed (a disconnect during the waiting phase lands here).
func (r *Room) cancelTimer() {
	if r == nil {
		return
	}

	r.Mu.Lock()
	if r.Timer == nil || !r.Timer.IsActive {
		r.Mu.Unlock()
		return
	}
	if r.Timer.cancel != nil {
		r.Timer.cancel()
	}
	r.Timer.IsActive = false
	roomID := r.Id
	elapsed := time.Since(r.Timer.StartTime).Round(time.Millisecond)
	duration := r.Timer.Duration
	r.Mu.Unlock()

	log.Printf("[cancelTimer] room=%s: timer cancelled %v into %v", roomID, elapsed, duration)
}

// countdownTick decrements the drawing clock and pushes a timer-update so
// clients do not have to rely on the get-game-state poll.
func (r *Room) countdownTick() {
	r.Mu.Lock()
	if r.Phase != internal.PhaseDrawing {
		r.Mu.Unlock()
		return
	}
	if r.TimeLeft > 0 {
		r.TimeLeft--
	}
	update := internal.TimerUpdateData{
		TimeLeft:  r.TimeLeft,
		GameState: r.Phase,
	}
	r.Mu.Unlock()

	r.Broadcast(internal.Message[internal.TimerUpdateData]{
		Type: "timer-update",
		Data: update,
	})
}
