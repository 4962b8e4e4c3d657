package commands

import (
	"sync"
	"time"
)

// CooldownTracker enforces per-command cooldowns at dispatch time
type CooldownTracker struct {
	usage map[string]*commandUsage
	mu    sync.Mutex
}

// commandUsage tracks invocations of one command by one user
type commandUsage struct {
	windowStart time.Time
	count       int
}

// NewCooldownTracker creates a new cooldown tracker
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		usage: make(map[string]*commandUsage),
	}
}

// Allow checks if a user is allowed to execute a command
// Returns true if allowed, false if the command is on cooldown
func (t *CooldownTracker) Allow(userID string, cmd *Command) bool {
	if cmd.Cooldown == nil {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := userID + ":" + cmd.Name
	now := time.Now()

	u, exists := t.usage[key]
	if !exists {
		// First time user is invoking this command
		t.usage[key] = &commandUsage{
			windowStart: now,
			count:       1,
		}
		return true
	}

	// Reset the counter if the window has passed
	if now.Sub(u.windowStart) >= cmd.Cooldown.Per {
		u.windowStart = now
		u.count = 1
		return true
	}

	if u.count >= cmd.Cooldown.Rate {
		return false
	}

	u.count++
	return true
}

// RetryAfter returns how long until the user can invoke the command again
func (t *CooldownTracker) RetryAfter(userID string, cmd *Command) time.Duration {
	if cmd.Cooldown == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := userID + ":" + cmd.Name
	u, exists := t.usage[key]
	if !exists {
		return 0
	}

	elapsed := time.Since(u.windowStart)
	if elapsed >= cmd.Cooldown.Per {
		return 0
	}

	return cmd.Cooldown.Per - elapsed
}
