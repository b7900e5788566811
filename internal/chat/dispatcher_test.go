package chat_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listbot/internal/chat"
	"listbot/internal/pending"
	"listbot/internal/store"
)

const user = "42"

type harness struct {
	t     *testing.T
	store *store.Store
	bot   *chat.Dispatcher
}

func newHarness(t *testing.T, opts ...pending.Option) *harness {
	t.Helper()
	st := store.New("")
	return &harness{t: t, store: st, bot: chat.New(st, pending.NewTracker(opts...), nil)}
}

func (h *harness) send(text string) string {
	h.t.Helper()
	return h.sendAs(user, text)
}

func (h *harness) sendAs(u, text string) string {
	h.t.Helper()
	reply, err := h.bot.Handle(context.Background(), u, text)
	require.NoError(h.t, err)
	return reply
}

func (h *harness) items(name string) []string {
	h.t.Helper()
	_, items, err := h.store.Items(name)
	require.NoError(h.t, err)
	return items
}

func (h *harness) groceries() {
	h.t.Helper()
	h.send("create list - Groceries")
	h.send("Groceries - Milk")
	h.send("Groceries - Eggs")
}

func TestLists_Empty(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, chat.ReplyNoLists, h.send("lists"))
}

func TestCreate_ThenLists(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "✅ List created: *Substack Ideas*", h.send("Create list - Substack Ideas"))
	assert.Equal(t, "✅ List created: *Groceries*", h.send("create list - Groceries"))

	assert.Equal(t, "📂 *Your Lists:*\n• Substack Ideas\n• Groceries", h.send("LISTS"))
}

func TestCreate_DuplicateIsRejected(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Ideas")
	h.send("Ideas - first")

	assert.Equal(t, "❌ List already exists: *Ideas*", h.send("create list - ideas"))
	assert.Equal(t, []string{"Ideas"}, h.store.Names())
	assert.Equal(t, []string{"first"}, h.items("Ideas"))
}

func TestCreate_EmptyName(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, chat.ReplyCreateUsage, h.send("create list -   "))
	assert.Equal(t, 0, h.store.Len())
}

func TestAdd_ThenShow(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Groceries")

	assert.Equal(t, "➕ Added to *Groceries*: Milk", h.send("groceries - Milk"))
	h.send("Groceries - Eggs")
	h.send("Groceries - Milk")

	assert.Equal(t, "📃 *Groceries*\n• Milk\n• Eggs\n• Milk", h.send("GROCERIES"))
}

func TestShow_Empty(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Ideas")
	assert.Equal(t, "📃 *Ideas* is empty.", h.send("ideas"))
}

func TestAdd_UnknownListFallsThroughToShow(t *testing.T) {
	h := newHarness(t)
	h.send("create list - To-Do")

	// "To" does not resolve, so the whole text is tried as a list name
	assert.Equal(t, "📃 *To-Do* is empty.", h.send("to-do"))
	assert.Equal(t, chat.HelpText, h.send("Nope - item"))
	assert.Empty(t, h.items("To-Do"))
}

func TestUnknownText_ReturnsHelp(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Ideas")

	assert.Equal(t, chat.HelpText, h.send("hello there"))
	assert.Equal(t, chat.HelpText, h.send("delete"))
	assert.Equal(t, []string{"Ideas"}, h.store.Names())
	assert.Empty(t, h.items("Ideas"))
}

func TestDeleteFlow(t *testing.T) {
	h := newHarness(t)
	h.groceries()

	reply := h.send("delete from Groceries")
	assert.Equal(t, "📃 *Items in Groceries:*\n1. Milk\n2. Eggs\n\nReply with: delete 2", reply)

	action, ok := h.bot.Pending(user)
	require.True(t, ok)
	assert.Equal(t, pending.Delete, action.Kind)
	assert.Equal(t, "Groceries", action.List)

	assert.Equal(t, "🗑️ Deleted from *Groceries*:\nMilk", h.send("delete 1"))
	assert.Equal(t, []string{"Eggs"}, h.items("Groceries"))

	_, ok = h.bot.Pending(user)
	assert.False(t, ok)

	// without a pending action "delete 1" is ordinary text
	assert.Equal(t, chat.HelpText, h.send("delete 1"))
	assert.Equal(t, []string{"Eggs"}, h.items("Groceries"))
}

func TestDeleteFlow_OutOfRangeKeepsPending(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("delete from groceries")

	assert.Equal(t, chat.ReplyInvalidNumber, h.send("delete 5"))
	assert.Equal(t, chat.ReplyInvalidNumber, h.send("delete 0"))
	assert.Equal(t, chat.ReplyInvalidNumber, h.send("delete 99999999999999999999"))
	assert.Equal(t, []string{"Milk", "Eggs"}, h.items("Groceries"))

	_, ok := h.bot.Pending(user)
	assert.True(t, ok)

	assert.Equal(t, "🗑️ Deleted from *Groceries*:\nEggs", h.send("delete 2"))
}

func TestDeleteFlow_MalformedKeepsPending(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("delete from Groceries")

	assert.Equal(t, chat.ReplyDeleteUsage, h.send("delete two"))
	assert.Equal(t, chat.ReplyDeleteUsage, h.send("delete"))

	_, ok := h.bot.Pending(user)
	assert.True(t, ok)
	assert.Equal(t, []string{"Milk", "Eggs"}, h.items("Groceries"))
}

func TestDeleteFlow_UnrelatedTextFallsThrough(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("delete from Groceries")

	assert.Equal(t, "➕ Added to *Groceries*: Bread", h.send("Groceries - Bread"))

	_, ok := h.bot.Pending(user)
	assert.True(t, ok, "unrelated text leaves the action in place")

	assert.Equal(t, "🗑️ Deleted from *Groceries*:\nBread", h.send("delete 3"))
}

func TestDeleteFrom_Errors(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Ideas")

	assert.Equal(t, chat.ReplyListNotFound, h.send("delete from Nope"))
	assert.Equal(t, chat.ReplyListEmpty, h.send("delete from ideas"))
	assert.Equal(t, chat.ReplyListEmpty, h.send("edit from Ideas"))

	_, ok := h.bot.Pending(user)
	assert.False(t, ok)
}

func TestEditFlow(t *testing.T) {
	h := newHarness(t)
	h.groceries()

	reply := h.send("Edit from groceries")
	assert.Equal(t, "✏️ *Items in Groceries:*\n1. Milk\n2. Eggs\n\nReply with:\nedit 2 -> new text", reply)

	assert.Equal(t, "✏️ Edited in *Groceries*:\nEggs → Bread", h.send("edit 2 -> Bread"))
	assert.Equal(t, []string{"Milk", "Bread"}, h.items("Groceries"))

	_, ok := h.bot.Pending(user)
	assert.False(t, ok)
}

func TestEditFlow_Errors(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("edit from Groceries")

	assert.Equal(t, chat.ReplyEditUsage, h.send("edit 2 Bread"))
	assert.Equal(t, chat.ReplyInvalidNumber, h.send("edit 3 -> Bread"))
	assert.Equal(t, chat.ReplyInvalidNumber, h.send("edit 99999999999999999999 -> Bread"))
	assert.Equal(t, []string{"Milk", "Eggs"}, h.items("Groceries"))

	_, ok := h.bot.Pending(user)
	assert.True(t, ok)
}

func TestPending_DeleteIgnoresEditReply(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("delete from Groceries")

	// "edit 1 -> x" is not a delete reply; it falls through and matches the add rule
	// without resolving "edit 1", then shows help
	assert.Equal(t, chat.HelpText, h.send("edit 1 -> x"))
	assert.Equal(t, []string{"Milk", "Eggs"}, h.items("Groceries"))
}

func TestPending_NewStartCommandReplaces(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("create list - Ideas")
	h.send("Ideas - Blog")

	h.send("delete from Groceries")
	reply := h.send("delete from Ideas")
	assert.Contains(t, reply, "1. Blog")

	action, ok := h.bot.Pending(user)
	require.True(t, ok)
	assert.Equal(t, "Ideas", action.List)

	h.send("edit from Groceries")
	action, _ = h.bot.Pending(user)
	assert.Equal(t, pending.Edit, action.Kind)
	assert.Equal(t, "Groceries", action.List)
}

func TestPending_Cancel(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.send("delete from Groceries")

	assert.Equal(t, "👌 Cancelled delete from *Groceries*.", h.send("Cancel"))
	_, ok := h.bot.Pending(user)
	assert.False(t, ok)

	// without a pending action cancel is ordinary text
	assert.Equal(t, chat.HelpText, h.send("cancel"))
}

func TestPending_PerUser(t *testing.T) {
	h := newHarness(t)
	h.groceries()
	h.sendAs("alice", "delete from Groceries")

	assert.Equal(t, chat.HelpText, h.sendAs("bob", "delete 1"))
	assert.Equal(t, "🗑️ Deleted from *Groceries*:\nMilk", h.sendAs("alice", "delete 1"))
}

func TestPending_Expires(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	h := newHarness(t,
		pending.WithTTL(5*time.Minute),
		pending.WithClock(func() time.Time { return now }),
	)
	h.groceries()
	h.send("delete from Groceries")

	now = now.Add(10 * time.Minute)
	assert.Equal(t, chat.HelpText, h.send("delete 1"))
	assert.Equal(t, []string{"Milk", "Eggs"}, h.items("Groceries"))
}

func TestHandle_PersistsEveryMutation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.json")
	st, err := store.Load(path)
	require.NoError(t, err)
	bot := chat.New(st, nil, nil)
	ctx := context.Background()

	for _, msg := range []string{
		"create list - Groceries",
		"Groceries - Milk",
		"Groceries - Eggs",
		"edit from Groceries",
		"edit 1 -> Oat milk",
		"delete from Groceries",
		"delete 2",
	} {
		_, err := bot.Handle(ctx, user, msg)
		require.NoError(t, err, msg)
	}

	reloaded, err := store.Load(path)
	require.NoError(t, err)
	_, items, err := reloaded.Items("groceries")
	require.NoError(t, err)
	assert.Equal(t, []string{"Oat milk"}, items)
}

func TestHandle_PersistenceFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	st := store.New(filepath.Join(blocker, "lists.json"))
	bot := chat.New(st, nil, nil)

	_, err := bot.Handle(context.Background(), user, "create list - Ideas")
	assert.Error(t, err)
}

func TestHandle_Concurrent(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Log")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.bot.Handle(context.Background(), user, "Log - entry")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, h.items("Log"), 20)
}

func TestItemsShownAsStored(t *testing.T) {
	h := newHarness(t)
	h.send("create list - Math")

	assert.Equal(t, "➕ Added to *Math*: ", h.send("Math - "))
	assert.Equal(t, `➕ Added to *Math*: 2\*3\*4`, h.send("Math - 2*3*4"))
	assert.Equal(t, []string{"", "2*3*4"}, h.items("Math"))

	assert.Equal(t, "📃 *Math*\n• \n• 2\\*3\\*4", h.send("math"))
	assert.Equal(t, "📃 *Items in Math:*\n1. \n2. 2\\*3\\*4\n\nReply with: delete 2", h.send("delete from math"))
	assert.Equal(t, "🗑️ Deleted from *Math*:\n", h.send("delete 1"))
}
