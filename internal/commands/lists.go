package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"listbot/internal/config"
	"listbot/internal/exitcode"
	"listbot/internal/output"
	"listbot/internal/store"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print all list names" }
func (c *ListsCmd) Usage() string     { return "listbot lists [common flags]" }
func (c *ListsCmd) NeedsStore() bool  { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	names := st.Names()
	if len(names) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	for _, name := range names {
		output.FormatListName(out, name)
	}
	return exitcode.Success
}
