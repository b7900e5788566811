package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"listbot/internal/chat"
	"listbot/internal/config"
	"listbot/internal/console"
	"listbot/internal/exitcode"
	"listbot/internal/logging"
	"listbot/internal/pending"
	"listbot/internal/store"
)

func init() {
	Register(&SendCmd{})
}

// SendCmd implements the send command: one message, one reply.
// Pending delete/edit state lives in memory and does not carry over to the next invocation.
type SendCmd struct{}

func (c *SendCmd) Name() string      { return "send" }
func (c *SendCmd) Aliases() []string { return []string{"say"} }
func (c *SendCmd) Synopsis() string  { return "Send one chat message and print the reply" }
func (c *SendCmd) Usage() string     { return "listbot send [common flags] <message...>" }
func (c *SendCmd) NeedsStore() bool  { return true }

func (c *SendCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SendCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}

	bot := chat.New(st, pending.NewTracker(pending.WithTTL(cfg.PendingTTL)), logging.New(errOut, cfg.Debug))
	reply, err := bot.Handle(ctx, cfg.User, text)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	fmt.Fprintln(out, console.Render(reply, cfg.Wrap))
	return exitcode.Success
}
