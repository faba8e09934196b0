// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit enforces per-backend call quotas over a fixed 60-second
// window. The limiter is the only mutable state shared across concurrent
// search calls; it exposes a single atomic check-and-increment operation and
// never raw counters.
package ratelimit

import (
	"sync"
	"time"
)

// Window is the fixed quota window.
const Window = 60 * time.Second

// timeNow is swapped by tests to simulate clock advance.
var timeNow = time.Now

// windowState is the counter for one backend's current window.
type windowState struct {
	count     int
	resetTime time.Time
}

// Limiter tracks per-backend call counts. Construct with New; safe for
// concurrent use.
type Limiter struct {
	mu     sync.Mutex
	quotas map[string]int
	states map[string]*windowState
}

// DefaultQuota applies to backends without a configured quota.
const DefaultQuota = 30

// New builds a Limiter from a backend → per-minute quota map. The map is
// copied; later mutation of the argument has no effect.
func New(quotas map[string]int) *Limiter {
	q := make(map[string]int, len(quotas))
	for backend, quota := range quotas {
		if quota > 0 {
			q[backend] = quota
		}
	}
	return &Limiter{
		quotas: q,
		states: make(map[string]*windowState),
	}
}

// CheckAndIncrement records one call against the backend's window and
// reports whether the call is within quota. State is created lazily on the
// first call and reset whenever the window has elapsed; the first call of a
// fresh window is always allowed. The read-increment-check runs under one
// lock so two concurrent calls cannot both observe "under quota" and
// together exceed it.
func (l *Limiter) CheckAndIncrement(backend string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := timeNow()
	st, ok := l.states[backend]
	if !ok || !now.Before(st.resetTime) {
		l.states[backend] = &windowState{count: 1, resetTime: now.Add(Window)}
		return true
	}

	st.count++
	return st.count <= l.quota(backend)
}

func (l *Limiter) quota(backend string) int {
	if q, ok := l.quotas[backend]; ok {
		return q
	}
	return DefaultQuota
}
