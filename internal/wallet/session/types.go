package session

import (
	"fmt"
	"time"
)

// State is the UX lock state. It is transient and process-local; it is never
// persisted and never substitutes for the vault's cryptographic check.
type State int

const (
	// StateLocked is the initial state; PIN attempts are accepted.
	StateLocked State = iota
	// StateUnlocked follows a successful PIN verification.
	StateUnlocked
	// StateLockedOut rejects attempts until the cooldown elapses.
	StateLockedOut
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateLockedOut:
		return "locked_out"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// LockedOutError reports the cooldown remaining before PIN attempts are
// accepted again.
type LockedOutError struct {
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("locked out for another %s", e.Remaining.Round(time.Second))
}

// Defaults for the session policy.
const (
	DefaultAutoLockAfter     = 5 * time.Minute
	DefaultMaxFailedAttempts = 5
	DefaultLockoutCooldown   = 5 * time.Minute
)

// Config holds the session policy.
type Config struct {
	// AutoLockAfter is the inactivity window before an unlocked session
	// relocks. Reset on observed user activity.
	AutoLockAfter time.Duration

	// MaxFailedAttempts is the number of consecutive failed PIN attempts
	// that triggers the lockout cooldown.
	MaxFailedAttempts int

	// LockoutCooldown is how long attempts are rejected after a lockout.
	LockoutCooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.AutoLockAfter <= 0 {
		c.AutoLockAfter = DefaultAutoLockAfter
	}
	if c.MaxFailedAttempts <= 0 {
		c.MaxFailedAttempts = DefaultMaxFailedAttempts
	}
	if c.LockoutCooldown <= 0 {
		c.LockoutCooldown = DefaultLockoutCooldown
	}

	return c
}
