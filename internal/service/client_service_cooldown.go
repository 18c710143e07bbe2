// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package service

import (
	"sync"
	"time"
)

// syncCooldown is the concrete SyncGate. Each group carries an escalation
// level: the n-th rapid sync attempt must wait steps[n-1] (capped at the last
// step) since the previous one. A quiet period of reset drops the level back
// to zero.
type syncCooldown struct {
	steps []time.Duration
	reset time.Duration

	mu     sync.Mutex
	groups map[string]cooldownState
}

type cooldownState struct {
	level int
	last  time.Time
}

// NewSyncCooldown constructs a SyncGate with the given escalation ladder.
func NewSyncCooldown(steps []time.Duration, reset time.Duration) SyncGate {
	return &syncCooldown{
		steps:  steps,
		reset:  reset,
		groups: make(map[string]cooldownState),
	}
}

func (c *syncCooldown) Acquire(groupID string, now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.groups[groupID]

	if !state.last.IsZero() && now.Sub(state.last) >= c.reset {
		state = cooldownState{}
	}

	if state.level > 0 && len(c.steps) > 0 {
		step := c.steps[min(state.level-1, len(c.steps)-1)]
		if waited := now.Sub(state.last); waited < step {
			return step - waited, false
		}
	}

	state.level++
	state.last = now
	c.groups[groupID] = state

	return 0, true
}
