package session

import (
	"sync"
	"time"
)

// Session is the lock/unlock state machine gating the UX. It throttles PIN
// attempts and tracks the unlocked window. It is never an authorization
// gate: the vault's PIN-derived decryption is the single cryptographic check
// and this state must not be consulted on crypto paths.
type Session struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	state          State
	unlockedAt     time.Time
	lastActivity   time.Time
	failedAttempts int
	lockoutUntil   time.Time

	autoLockTimer *time.Timer
}

// New creates a session in the Locked state.
func New(cfg Config) *Session {
	return NewWithNow(cfg, time.Now)
}

// NewWithNow creates a session with an injected time source. Used by tests.
func NewWithNow(cfg Config, now func() time.Time) *Session {
	return &Session{
		cfg:   cfg.withDefaults(),
		now:   now,
		state: StateLocked,
	}
}

// CheckAttemptAllowed returns a LockedOutError while the cooldown is active.
// A rejected attempt does not advance the failure counter.
func (s *Session) CheckAttemptAllowed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	if s.state == StateLockedOut {
		return &LockedOutError{Remaining: s.lockoutUntil.Sub(s.now())}
	}

	return nil
}

// RecordSuccess transitions to Unlocked, resets the failure counter and arms
// the auto-lock timer.
func (s *Session) RecordSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.state = StateUnlocked
	s.unlockedAt = now
	s.lastActivity = now
	s.failedAttempts = 0
	s.lockoutUntil = time.Time{}
	s.armAutoLockLocked()
}

// RecordFailure counts a consecutive failed PIN attempt. Reaching the
// configured maximum starts the lockout cooldown. Returns the resulting
// state.
func (s *Session) RecordFailure() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	// During an active cooldown additional failures do not re-increment.
	if s.state == StateLockedOut {
		return s.state
	}

	s.failedAttempts++
	if s.failedAttempts >= s.cfg.MaxFailedAttempts {
		s.state = StateLockedOut
		s.lockoutUntil = s.now().Add(s.cfg.LockoutCooldown)
		s.stopAutoLockLocked()
	}

	return s.state
}

// Touch resets the auto-lock countdown on observed user activity.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	if s.state != StateUnlocked {
		return
	}

	s.lastActivity = s.now()
	s.armAutoLockLocked()
}

// Lock forces the Locked state: explicit lock, app backgrounding or the
// auto-lock timeout. An active lockout cooldown keeps running.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateLockedOut {
		return
	}

	s.lockLocked()
}

// State returns the current state, applying pending cooldown and auto-lock
// expiries first.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	return s.state
}

// FailedAttempts returns the consecutive failed attempt count.
func (s *Session) FailedAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	return s.failedAttempts
}

// UnlockedAt returns when the session was last unlocked; zero when locked.
func (s *Session) UnlockedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshLocked()

	return s.unlockedAt
}

// refreshLocked applies lazy state transitions: cooldown expiry and
// auto-lock timeout. The timer also fires Lock, but state reads stay correct
// even if it has not yet.
func (s *Session) refreshLocked() {
	now := s.now()

	switch s.state {
	case StateLockedOut:
		if !now.Before(s.lockoutUntil) {
			s.state = StateLocked
			s.failedAttempts = 0
			s.lockoutUntil = time.Time{}
		}
	case StateUnlocked:
		if now.Sub(s.lastActivity) >= s.cfg.AutoLockAfter {
			s.lockLocked()
		}
	case StateLocked:
	}
}

func (s *Session) lockLocked() {
	s.state = StateLocked
	s.unlockedAt = time.Time{}
	s.stopAutoLockLocked()
}

// armAutoLockLocked (re)starts the auto-lock timer. The timer only moves
// session state; in-flight decrypt or sign calls are never interrupted.
func (s *Session) armAutoLockLocked() {
	s.stopAutoLockLocked()
	s.autoLockTimer = time.AfterFunc(s.cfg.AutoLockAfter, s.Lock)
}

func (s *Session) stopAutoLockLocked() {
	if s.autoLockTimer != nil {
		s.autoLockTimer.Stop()
		s.autoLockTimer = nil
	}
}
