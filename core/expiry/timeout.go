package expiry

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dmitrymomot/sessionexpiry/core/logger"
)

// Callback returns the function fired when the session lapses, or nil.
func (t *Tracker) Callback() func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.callback
}

// SetCallback registers fn as the expiry callback. An armed timer is left untouched
// and picks up fn when it fires.
func (t *Tracker) SetCallback(fn func()) {
	t.mu.Lock()
	t.callback = fn
	t.mu.Unlock()
}

// Armed reports whether a timer handle is held.
// The handle stays held after firing until Stop or Reset.
func (t *Tracker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Start arms a one-shot timer that fires the callback one second after the
// timeout elapses. A previously armed timer is cancelled first.
// Starting without a callback is allowed, but firing without one panics.
func (t *Tracker) Start() {
	t.mu.Lock()
	t.stopLocked()
	t.startLocked()
	t.mu.Unlock()
}

// Stop cancels the pending timer, if any. A callback already running is not interrupted.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
	t.debugLog(context.Background(), "expiry timeout stopped")
}

// Reset re-arms the timer with a fresh delay.
func (t *Tracker) Reset() {
	t.Start()
}

// RemainingSeconds returns the stored expiry minus now when a callback is
// registered, a timer is armed, and an expiry is stored. The result is
// informational and may be negative.
func (t *Tracker) RemainingSeconds(ctx context.Context) (int64, bool) {
	t.mu.Lock()
	armed := t.timer != nil && t.callback != nil
	t.mu.Unlock()

	if !armed {
		t.debugLog(ctx, "expiry timeout function is not set")
		return 0, false
	}

	expiresAt, ok := t.Expiry(ctx)
	if !ok {
		return 0, false
	}

	remaining := expiresAt - t.nowSeconds()
	t.debugLog(ctx, "expiry timeout function will be triggered",
		slog.Int64("minutes", int64(math.Round(float64(remaining)/60))),
		logger.Remaining(remaining),
		logger.ExpiresAt(expiresAt),
	)
	return remaining, true
}

func (t *Tracker) startLocked() {
	delay := t.timeout + firingSlack
	t.timer = t.clock.AfterFunc(delay, t.fire)
	t.debugLog(context.Background(), "expiry timeout armed",
		logger.Delay(delay),
		slog.Time("fires_at", t.clock.Now().Add(delay)),
	)
}

func (t *Tracker) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// fire runs on the timer goroutine. A missing callback is a caller bug and is not recovered.
func (t *Tracker) fire() {
	cb := t.Callback()
	if cb == nil {
		t.logger.LogAttrs(context.Background(), slog.LevelError, "expiry timeout fired without a callback",
			logger.Error(ErrCallbackNotSet),
		)
		panic(fmt.Errorf("%w: %s", ErrCallbackNotSet, t.key))
	}

	t.debugLog(context.Background(), "expiry timeout fired")
	cb()
}
