package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listbot/internal/chat"
	"listbot/internal/config"
	"listbot/internal/console"
	"listbot/internal/exitcode"
	"listbot/internal/logging"
	"listbot/internal/pending"
	"listbot/internal/store"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd implements the interactive chat session.
type ChatCmd struct {
	// Input overrides the terminal line reader (for testing).
	Input console.LineInput
}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return nil }
func (c *ChatCmd) Synopsis() string  { return "Start an interactive chat session" }
func (c *ChatCmd) Usage() string     { return "listbot [chat] [common flags]" }
func (c *ChatCmd) NeedsStore() bool  { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s (use: listbot send <message>)\n", args[0])
		return exitcode.UserError
	}

	logger := logging.New(errOut, cfg.Debug)

	in := c.Input
	if in == nil {
		var err error
		in, err = console.NewLineInput(cfg.HistoryPath())
		if err != nil {
			logger.Debug("readline unavailable, using plain input", "error", err)
		}
	}
	defer in.Close()

	if !cfg.Quiet {
		fmt.Fprintf(out, "listbot: %d lists in %s (ctrl-d to quit)\n", st.Len(), st.Path())
	}

	session := &console.Session{
		In:    in,
		Out:   out,
		Bot:   chat.New(st, pending.NewTracker(pending.WithTTL(cfg.PendingTTL)), logger),
		User:  cfg.User,
		Width: cfg.Wrap,
	}
	if err := session.Run(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}
