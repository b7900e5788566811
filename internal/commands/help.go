package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"listbot/internal/chat"
	"listbot/internal/config"
	"listbot/internal/exitcode"
	"listbot/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "listbot help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	WriteHelp(out, DefaultRegistry)
	return exitcode.Success
}

// WriteHelp prints the usage of every command in r followed by the chat grammar.
func WriteHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
	}
	tw.Flush()
	fmt.Fprint(w, commonFlagsText)
	fmt.Fprintln(w, "\nChat messages:")
	fmt.Fprintln(w, chat.HelpText)
}

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --data <file>    Override the lists file
  --user <id>      Chat user id (default from config.yaml or "local")
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
