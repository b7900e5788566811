package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"listbot/internal/config"
	"listbot/internal/exitcode"
	"listbot/internal/output"
	"listbot/internal/store"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"list"} }
func (c *ShowCmd) Synopsis() string  { return "Print the numbered items of a list" }
func (c *ShowCmd) Usage() string     { return "listbot show [common flags] <list-name>" }
func (c *ShowCmd) NeedsStore() bool  { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	listName := strings.TrimSpace(strings.Join(args, " "))
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	_, items, err := st.Items(listName)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			fmt.Fprintf(errOut, "error: list not found: %s\n", listName)
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}

	if len(items) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "list is empty")
		}
		return exitcode.Success
	}

	for i, item := range items {
		output.FormatItem(out, i+1, item)
	}
	return exitcode.Success
}
