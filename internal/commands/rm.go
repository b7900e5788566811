package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"listbot/internal/config"
	"listbot/internal/exitcode"
	"listbot/internal/store"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command: a one-shot "delete from" without the menu.
type RmCmd struct {
	listName string
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return nil }
func (c *RmCmd) Synopsis() string  { return "Delete an item by number" }
func (c *RmCmd) Usage() string     { return "listbot rm [--list <name>] [<name>] <number>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: item number required")
		return exitcode.UserError
	}

	name := c.listName
	ref := args[len(args)-1]
	if rest := args[:len(args)-1]; len(rest) > 0 {
		if name != "" {
			fmt.Fprintln(errOut, "error: cannot use both --list and a list name argument")
			return exitcode.UserError
		}
		name = strings.Join(rest, " ")
	}
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	n, err := strconv.Atoi(ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid item number: %s\n", ref)
		return exitcode.UserError
	}

	removed, err := st.RemoveAt(name, n-1)
	switch {
	case errors.Is(err, store.ErrListNotFound):
		fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		return exitcode.UserError
	case errors.Is(err, store.ErrIndexOutOfRange):
		fmt.Fprintf(errOut, "error: item %d not found in %s\n", n, name)
		return exitcode.UserError
	case err != nil:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "deleted: %s\n", removed)
	}
	return exitcode.Success
}
