package expiry_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionexpiry/core/expiry"
)

// capturingClock records AfterFunc callbacks instead of running them,
// so tests can fire them synchronously.
type capturingClock struct {
	*clockwork.FakeClock

	mu  sync.Mutex
	fns []func()
}

func (c *capturingClock) AfterFunc(d time.Duration, f func()) clockwork.Timer {
	c.mu.Lock()
	c.fns = append(c.fns, f)
	c.mu.Unlock()
	return c.FakeClock.NewTimer(d)
}

func (c *capturingClock) last() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fns[len(c.fns)-1]
}

func recoverError(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	fn()
	return nil
}

func TestStart(t *testing.T) {
	t.Parallel()

	t.Run("fires callback one second after timeout", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		var calls atomic.Int32
		tr.SetCallback(func() { calls.Add(1) })
		tr.Start()
		assert.True(t, tr.Armed())

		f.clock.Advance(time.Minute)
		assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

		f.clock.Advance(time.Second)
		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("stop before delay prevents callback", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		var calls atomic.Int32
		tr.SetCallback(func() { calls.Add(1) })
		tr.Start()
		tr.Stop()
		assert.False(t, tr.Armed())

		f.clock.Advance(time.Hour)
		assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("restart keeps a single timer", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		var calls atomic.Int32
		tr.SetCallback(func() { calls.Add(1) })
		tr.Start()
		tr.Start()

		f.clock.Advance(time.Hour)
		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool { return calls.Load() > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run("callback registered after start is used", func(t *testing.T) {
		t.Parallel()

		clock := &capturingClock{FakeClock: clockwork.NewFakeClockAt(epoch)}
		tr, err := expiry.New("sess1", expiry.BackendSession, time.Minute,
			expiry.Stores{Session: expiry.NewMemoryStore()}, expiry.WithClock(clock))
		require.NoError(t, err)

		tr.Start()
		fired := false
		tr.SetCallback(func() { fired = true })

		clock.last()()
		assert.True(t, fired)
	})

	t.Run("firing without callback panics", func(t *testing.T) {
		t.Parallel()

		clock := &capturingClock{FakeClock: clockwork.NewFakeClockAt(epoch)}
		tr, err := expiry.New("sess1", expiry.BackendSession, time.Minute,
			expiry.Stores{Session: expiry.NewMemoryStore()}, expiry.WithClock(clock))
		require.NoError(t, err)

		tr.Start()
		assert.True(t, tr.Armed())

		err = recoverError(clock.last())
		require.Error(t, err)
		assert.True(t, errors.Is(err, expiry.ErrCallbackNotSet))
		assert.Contains(t, err.Error(), "expiryTimesess1")
	})

	t.Run("setting callback does not arm", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		tr.SetCallback(func() {})
		assert.False(t, tr.Armed())
		assert.NotNil(t, tr.Callback())

		tr.SetCallback(nil)
		assert.Nil(t, tr.Callback())
	})
}

func TestStop(t *testing.T) {
	t.Parallel()

	f := newFixture()
	tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

	assert.NotPanics(t, tr.Stop)
	assert.NotPanics(t, tr.Stop)
	assert.False(t, tr.Armed())
}

func TestReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rearms with a fresh delay", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		var calls atomic.Int32
		tr.SetCallback(func() { calls.Add(1) })
		tr.Start()

		f.clock.Advance(45 * time.Second)
		tr.Reset()
		assert.True(t, tr.Armed())

		f.clock.Advance(45 * time.Second)
		assert.Never(t, func() bool { return calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

		f.clock.Advance(16 * time.Second)
		assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("from idle ends armed", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)

		tr.Reset()
		assert.True(t, tr.Armed())
	})

	t.Run("remaining seconds return to full duration", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)
		tr.SetCallback(func() {})

		_, ok := tr.SetExpiry(ctx)
		require.True(t, ok)
		tr.Start()

		f.clock.Advance(30 * time.Second)
		before, ok := tr.RemainingSeconds(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(30), before)

		_, ok = tr.SetExpiry(ctx)
		require.True(t, ok)
		tr.Reset()

		after, ok := tr.RemainingSeconds(ctx)
		require.True(t, ok)
		assert.LessOrEqual(t, after, before+60)
		assert.InDelta(t, 60, after, 1)
	})
}

func TestRemainingSeconds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("requires callback and armed timer", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)
		_, ok := tr.SetExpiry(ctx)
		require.True(t, ok)

		_, ok = tr.RemainingSeconds(ctx)
		assert.False(t, ok, "idle without callback")

		tr.Start()
		_, ok = tr.RemainingSeconds(ctx)
		assert.False(t, ok, "armed without callback")

		tr.Stop()
		tr.SetCallback(func() {})
		_, ok = tr.RemainingSeconds(ctx)
		assert.False(t, ok, "idle with callback")

		tr.Start()
		remaining, ok := tr.RemainingSeconds(ctx)
		assert.True(t, ok)
		assert.Equal(t, int64(60), remaining)
	})

	t.Run("negative once past expiry", func(t *testing.T) {
		t.Parallel()

		clock := &capturingClock{FakeClock: clockwork.NewFakeClockAt(epoch)}
		tr, err := expiry.New("sess1", expiry.BackendSession, time.Minute,
			expiry.Stores{Session: expiry.NewMemoryStore()}, expiry.WithClock(clock))
		require.NoError(t, err)

		tr.SetCallback(func() {})
		_, ok := tr.SetExpiry(ctx)
		require.True(t, ok)
		tr.Start()

		clock.Advance(90 * time.Second)
		remaining, ok := tr.RemainingSeconds(ctx)
		assert.True(t, ok)
		assert.Equal(t, int64(-30), remaining)
	})

	t.Run("absent expiry", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)
		tr.SetCallback(func() {})
		tr.Start()

		_, ok := tr.RemainingSeconds(ctx)
		assert.False(t, ok)
	})

	t.Run("does not stop the timer", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		tr := f.tracker(t, "sess1", expiry.BackendLocal, time.Minute)
		tr.SetCallback(func() {})
		_, ok := tr.SetExpiry(ctx)
		require.True(t, ok)
		tr.Start()

		_, _ = tr.RemainingSeconds(ctx)
		assert.True(t, tr.Armed())
	})
}
