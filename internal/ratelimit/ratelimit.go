// Package ratelimit bounds how often each action may dispatch inside
// a fixed window. It exists for runaway agent loops: a model retrying
// a failing call will hammer infrastructure faster than any operator
// could intervene.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limit caps one action. Zero values mean unlimited.
type Limit struct {
	MaxCalls int
	Window   time.Duration
}

func (l Limit) effective() bool { return l.MaxCalls > 0 && l.Window > 0 }

// Limiter counts dispatches per action over fixed windows. The "*"
// key limits actions without an entry of their own; an explicit entry
// always wins, so a zero-valued entry exempts its action from the
// wildcard.
type Limiter struct {
	limits map[string]Limit

	mu      sync.Mutex
	windows map[string]*window

	now func() time.Time
}

type window struct {
	start time.Time
	count int
}

// New builds a Limiter. Returns nil when no entry is effective;
// callers nil-check instead of paying for a no-op lock.
func New(limits map[string]Limit) *Limiter {
	active := false
	for _, lim := range limits {
		if lim.effective() {
			active = true
			break
		}
	}
	if !active {
		return nil
	}
	return &Limiter{
		limits:  limits,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one dispatch of the action and reports whether it
// fits the window. Refused attempts are not counted, so a quiet
// period fully resets the window.
func (l *Limiter) Allow(action string) (string, bool) {
	lim, limited := l.limitFor(action)
	if !limited {
		return "", true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w := l.windows[action]
	if w == nil || now.Sub(w.start) >= lim.Window {
		w = &window{start: now}
		l.windows[action] = w
	}
	if w.count >= lim.MaxCalls {
		return fmt.Sprintf("rate limit exceeded for %s: %d calls in %s",
			action, lim.MaxCalls, lim.Window), false
	}
	w.count++
	return "", true
}

func (l *Limiter) limitFor(action string) (Limit, bool) {
	lim, ok := l.limits[action]
	if !ok {
		lim, ok = l.limits["*"]
	}
	if !ok || !lim.effective() {
		return Limit{}, false
	}
	return lim, true
}
