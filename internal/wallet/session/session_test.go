package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/wallet/session"
)

// fakeClock drives the session's lazy transitions without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestSession(cfg session.Config) (*session.Session, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}

	return session.NewWithNow(cfg, clock.Now), clock
}

func TestInitialStateIsLocked(t *testing.T) {
	sess, _ := newTestSession(session.Config{})

	assert.Equal(t, session.StateLocked, sess.State())
	assert.NoError(t, sess.CheckAttemptAllowed())
	assert.Equal(t, 0, sess.FailedAttempts())
}

func TestUnlockResetsFailures(t *testing.T) {
	sess, _ := newTestSession(session.Config{})

	sess.RecordFailure()
	sess.RecordFailure()
	require.Equal(t, 2, sess.FailedAttempts())

	sess.RecordSuccess()
	assert.Equal(t, session.StateUnlocked, sess.State())
	assert.Equal(t, 0, sess.FailedAttempts())
}

func TestFifthFailureTriggersLockout(t *testing.T) {
	sess, clock := newTestSession(session.Config{})

	for i := 0; i < 4; i++ {
		state := sess.RecordFailure()
		require.Equal(t, session.StateLocked, state, "failure %d", i+1)
	}

	state := sess.RecordFailure()
	require.Equal(t, session.StateLockedOut, state)

	// An attempt during the cooldown is rejected with the remaining wait and
	// does not advance the counter.
	err := sess.CheckAttemptAllowed()
	var lockedOut *session.LockedOutError
	require.ErrorAs(t, err, &lockedOut)
	require.Equal(t, session.DefaultLockoutCooldown, lockedOut.Remaining)

	require.Equal(t, session.StateLockedOut, sess.RecordFailure())
	require.Equal(t, 5, sess.FailedAttempts())

	// Remaining wait shrinks as time passes.
	clock.Advance(2 * time.Minute)
	err = sess.CheckAttemptAllowed()
	require.ErrorAs(t, err, &lockedOut)
	require.Equal(t, 3*time.Minute, lockedOut.Remaining)
}

func TestLockoutCooldownExpiry(t *testing.T) {
	sess, clock := newTestSession(session.Config{})

	for i := 0; i < 5; i++ {
		sess.RecordFailure()
	}
	require.Equal(t, session.StateLockedOut, sess.State())

	clock.Advance(session.DefaultLockoutCooldown)

	assert.Equal(t, session.StateLocked, sess.State())
	assert.Equal(t, 0, sess.FailedAttempts())
	assert.NoError(t, sess.CheckAttemptAllowed())
}

func TestExplicitLockDoesNotClearLockout(t *testing.T) {
	sess, _ := newTestSession(session.Config{})

	for i := 0; i < 5; i++ {
		sess.RecordFailure()
	}

	sess.Lock()
	require.Equal(t, session.StateLockedOut, sess.State())
}

func TestAutoLockAfterInactivity(t *testing.T) {
	sess, clock := newTestSession(session.Config{AutoLockAfter: time.Minute})

	sess.RecordSuccess()
	require.Equal(t, session.StateUnlocked, sess.State())

	clock.Advance(59 * time.Second)
	require.Equal(t, session.StateUnlocked, sess.State())

	clock.Advance(time.Second)
	require.Equal(t, session.StateLocked, sess.State())
	require.True(t, sess.UnlockedAt().IsZero())
}

func TestActivityResetsAutoLock(t *testing.T) {
	sess, clock := newTestSession(session.Config{AutoLockAfter: time.Minute})

	sess.RecordSuccess()

	clock.Advance(45 * time.Second)
	sess.Touch()

	clock.Advance(45 * time.Second)
	require.Equal(t, session.StateUnlocked, sess.State())

	clock.Advance(15 * time.Second)
	require.Equal(t, session.StateLocked, sess.State())
}

func TestExplicitLock(t *testing.T) {
	sess, _ := newTestSession(session.Config{})

	sess.RecordSuccess()
	require.Equal(t, session.StateUnlocked, sess.State())

	sess.Lock()
	require.Equal(t, session.StateLocked, sess.State())
}

func TestConfigDefaults(t *testing.T) {
	sess, clock := newTestSession(session.Config{})

	// 5 attempts by default.
	for i := 0; i < 4; i++ {
		require.Equal(t, session.StateLocked, sess.RecordFailure())
	}
	require.Equal(t, session.StateLockedOut, sess.RecordFailure())

	// 5 minute cooldown by default.
	clock.Advance(5*time.Minute - time.Second)
	require.Equal(t, session.StateLockedOut, sess.State())
	clock.Advance(time.Second)
	require.Equal(t, session.StateLocked, sess.State())
}
