// Package chat turns free-text messages into list operations and replies.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"listbot/internal/pending"
	"listbot/internal/store"
)

// Dispatcher routes each message of a user to a list operation.
// It owns the store and the pending-action tracker; Handle calls are serialized.
type Dispatcher struct {
	mu      sync.Mutex
	store   *store.Store
	pending *pending.Tracker
	log     *slog.Logger
}

// New creates a dispatcher over st and tr. A nil logger discards logs.
func New(st *store.Store, tr *pending.Tracker, logger *slog.Logger) *Dispatcher {
	if tr == nil {
		tr = pending.NewTracker()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{store: st, pending: tr, log: logger}
}

// Handle processes one message from user and returns the reply.
// The error is non-nil only when the snapshot could not be written.
func (d *Dispatcher) Handle(ctx context.Context, user, text string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	text = strings.TrimSpace(text)

	if action, ok := d.pending.Get(user); ok && !isStartCommand(text) {
		reply, handled, err := d.resume(ctx, user, action, text)
		if err != nil || handled {
			return reply, d.logged(ctx, err)
		}
	}

	cmd := Parse(text)
	reply, err := d.route(ctx, user, cmd)
	return reply, d.logged(ctx, err)
}

// resume tries to complete the user's pending action with text.
// handled is false when text is unrelated and should be routed normally.
func (d *Dispatcher) resume(ctx context.Context, user string, action pending.Action, text string) (string, bool, error) {
	if isCancel(text) {
		d.pending.Clear(user)
		return replyCancelled(string(action.Kind), action.List), true, nil
	}

	switch action.Kind {
	case pending.Delete:
		n, matched, perr := ParseDeleteReply(text)
		if !matched {
			return "", false, nil
		}
		if perr != nil {
			return ReplyDeleteUsage, true, nil
		}
		removed, err := d.store.RemoveAt(action.List, n-1)
		if reply, done := d.pendingFailure(user, err); done {
			return reply, true, nil
		}
		if err != nil {
			return "", true, err
		}
		d.pending.Clear(user)
		d.log.DebugContext(ctx, "item deleted", "user", user, "list", action.List, "index", n)
		return replyDeleted(action.List, removed), true, nil

	case pending.Edit:
		n, replacement, matched, perr := ParseEditReply(text)
		if !matched {
			return "", false, nil
		}
		if perr != nil {
			return ReplyEditUsage, true, nil
		}
		old, err := d.store.ReplaceAt(action.List, n-1, replacement)
		if reply, done := d.pendingFailure(user, err); done {
			return reply, true, nil
		}
		if err != nil {
			return "", true, err
		}
		d.pending.Clear(user)
		d.log.DebugContext(ctx, "item edited", "user", user, "list", action.List, "index", n)
		return replyEdited(action.List, old, replacement), true, nil
	}

	return "", false, nil
}

// pendingFailure maps user-facing store errors of a second step to a reply.
// An out-of-range index keeps the action; a vanished list drops it.
func (d *Dispatcher) pendingFailure(user string, err error) (string, bool) {
	switch {
	case errors.Is(err, store.ErrIndexOutOfRange):
		return ReplyInvalidNumber, true
	case errors.Is(err, store.ErrListNotFound):
		d.pending.Clear(user)
		return ReplyListNotFound, true
	}
	return "", false
}

func (d *Dispatcher) route(ctx context.Context, user string, cmd Command) (string, error) {
	d.log.DebugContext(ctx, "dispatch", "user", user, "command", cmd.Kind.String())

	switch cmd.Kind {
	case KindLists:
		names := d.store.Names()
		if len(names) == 0 {
			return ReplyNoLists, nil
		}
		return replyLists(names), nil

	case KindCreate:
		if cmd.List == "" {
			return ReplyCreateUsage, nil
		}
		name, err := d.store.Create(cmd.List)
		if errors.Is(err, store.ErrAlreadyExists) {
			return replyAlreadyExists(name), nil
		}
		if err != nil {
			return "", err
		}
		return replyCreated(name), nil

	case KindDeleteFrom, KindEditFrom:
		name, items, err := d.store.Items(cmd.List)
		if err != nil {
			return ReplyListNotFound, nil
		}
		if len(items) == 0 {
			return ReplyListEmpty, nil
		}
		if cmd.Kind == KindDeleteFrom {
			d.pending.Set(user, pending.Delete, name)
			return replyDeleteMenu(name, items), nil
		}
		d.pending.Set(user, pending.Edit, name)
		return replyEditMenu(name, items), nil

	case KindAdd:
		if _, ok := d.store.Resolve(cmd.List); ok {
			name, err := d.store.Add(cmd.List, cmd.Item)
			if err != nil {
				return "", err
			}
			return replyAdded(name, cmd.Item), nil
		}
		// not a known list: the whole text may still name one
		return d.show(cmd.Text)

	case KindShow:
		return d.show(cmd.List)
	}

	return HelpText, nil
}

// show replies with the items of the list named by text, or help when none matches.
func (d *Dispatcher) show(text string) (string, error) {
	name, items, err := d.store.Items(text)
	if err != nil {
		return HelpText, nil
	}
	return replyShow(name, items), nil
}

func (d *Dispatcher) logged(ctx context.Context, err error) error {
	if err != nil {
		d.log.ErrorContext(ctx, "failed to persist lists", "path", d.store.Path(), "error", err)
	}
	return err
}

// Pending returns the pending action of user, if any.
func (d *Dispatcher) Pending(user string) (pending.Action, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending.Get(user)
}
