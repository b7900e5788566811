package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"listbot/internal/backend/googletasks"
	"listbot/internal/config"
	"listbot/internal/exitcode"
	"listbot/internal/export"
	"listbot/internal/logging"
	"listbot/internal/service"
	"listbot/internal/store"
)

func init() {
	Register(&ExportCmd{})
}

// ServiceFactory creates the remote task service used by export.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// GoogleTasks is the default ServiceFactory.
func GoogleTasks(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return googletasks.New(ctx, cfg)
}

// ExportCmd implements the export command.
type ExportCmd struct {
	// NewService overrides the Google Tasks backend (for testing).
	NewService ServiceFactory

	prefix string
	dryRun bool
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Copy all lists into Google Tasks" }
func (c *ExportCmd) Usage() string {
	return "listbot export [--prefix <text>] [--dry-run] [common flags]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.prefix, "prefix", "", "")
	fs.BoolVar(&c.dryRun, "dry-run", false, "")
	fs.BoolVar(&c.dryRun, "n", false, "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	factory := c.NewService
	if factory == nil {
		if !cfg.HasOAuthClient() {
			fmt.Fprintf(errOut, "error: oauth_client.json not found in %s\n", cfg.Dir)
			return exitcode.AuthError
		}
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: listbot login)")
			return exitcode.AuthError
		}
		factory = GoogleTasks
	}

	svc, err := factory(ctx, cfg)
	if err != nil {
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "oauth") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	res, err := export.Export(ctx, st, svc, export.Options{Prefix: c.prefix, DryRun: c.dryRun}, logging.New(errOut, cfg.Debug))
	if !cfg.Quiet {
		for _, l := range res.Lists {
			state := "existing"
			if l.CreatedList {
				state = "new"
			}
			fmt.Fprintf(out, "%s -> %s (%s): %d added, %d skipped\n", l.Name, l.RemoteTitle, state, l.Added, l.Skipped)
		}
	}
	if err != nil {
		if strings.Contains(err.Error(), "run: listbot login") {
			fmt.Fprintf(errOut, "error: auth error: %s\n", err)
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: backend error: %s\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if c.dryRun {
			fmt.Fprintln(out, "dry run, nothing written")
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
