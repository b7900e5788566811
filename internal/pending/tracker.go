// Package pending tracks per-user two-step actions (delete or edit an item).
package pending

import (
	"time"
)

// Kind identifies which two-step flow a user is in.
type Kind string

const (
	Delete Kind = "delete"
	Edit   Kind = "edit"
)

// Action is the in-progress state of one user.
type Action struct {
	Kind  Kind
	List  string // canonical list name
	Since time.Time
}

// Tracker is an in-memory map of user id to pending action.
// It is not safe for concurrent use.
type Tracker struct {
	actions map[string]Action
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithTTL makes actions older than ttl read as absent. Zero disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(t *Tracker) { t.ttl = ttl }
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		actions: make(map[string]Action),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Set records a pending action for user, replacing any previous one.
func (t *Tracker) Set(user string, kind Kind, list string) {
	t.actions[user] = Action{Kind: kind, List: list, Since: t.now()}
}

// Get returns the pending action for user. Expired actions are dropped.
func (t *Tracker) Get(user string) (Action, bool) {
	a, ok := t.actions[user]
	if !ok {
		return Action{}, false
	}
	if t.ttl > 0 && t.now().Sub(a.Since) > t.ttl {
		delete(t.actions, user)
		return Action{}, false
	}
	return a, true
}

// Clear removes the pending action for user.
func (t *Tracker) Clear(user string) {
	delete(t.actions, user)
}

// Len returns the number of users with a pending action, expired ones included.
func (t *Tracker) Len() int {
	return len(t.actions)
}
