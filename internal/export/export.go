// Package export copies the local lists into a remote task service.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"listbot/internal/service"
	"listbot/internal/store"
)

// Options controls an export run.
type Options struct {
	// Prefix is prepended to every remote list title.
	Prefix string

	// DryRun reports what would be created without calling the service.
	DryRun bool
}

// ListResult is the outcome for one local list.
type ListResult struct {
	Name        string
	RemoteTitle string
	CreatedList bool
	Added       int
	Skipped     int
}

// Result summarizes an export run.
type Result struct {
	Lists []ListResult
}

// Added returns the number of tasks created across all lists.
func (r Result) Added() int {
	n := 0
	for _, l := range r.Lists {
		n += l.Added
	}
	return n
}

// Export pushes every list of st to svc. Remote lists are matched by
// normalized title and created when missing. Items whose title already exists
// as an open task are skipped, so repeated runs only add new items.
func Export(ctx context.Context, st *store.Store, svc service.Service, opts Options, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	remote, err := svc.ListLists(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list remote lists: %w", err)
	}
	byTitle := make(map[string]service.TaskList, len(remote))
	for _, l := range remote {
		key := store.Normalize(l.Title)
		if _, dup := byTitle[key]; !dup {
			byTitle[key] = l
		}
	}

	var result Result
	for _, name := range st.Names() {
		_, items, err := st.Items(name)
		if err != nil {
			return result, err
		}
		lr, err := exportList(ctx, svc, byTitle, opts, name, items)
		if err != nil {
			return result, fmt.Errorf("export %s: %w", name, err)
		}
		logger.DebugContext(ctx, "list exported", "list", name, "remote", lr.RemoteTitle, "added", lr.Added, "skipped", lr.Skipped)
		result.Lists = append(result.Lists, lr)
	}
	return result, nil
}

func exportList(ctx context.Context, svc service.Service, byTitle map[string]service.TaskList, opts Options, name string, items []string) (ListResult, error) {
	lr := ListResult{Name: name, RemoteTitle: opts.Prefix + name}

	existing := make(map[string]int)
	list, ok := byTitle[store.Normalize(lr.RemoteTitle)]
	if ok {
		tasks, err := svc.ListOpenTasks(ctx, list.ID)
		if err != nil {
			return lr, err
		}
		for _, t := range tasks {
			existing[t.Title]++
		}
	} else {
		lr.CreatedList = true
		if !opts.DryRun {
			created, err := svc.CreateList(ctx, lr.RemoteTitle)
			if err != nil {
				return lr, err
			}
			list = created
			byTitle[store.Normalize(lr.RemoteTitle)] = created
		}
	}

	var missing []string
	for _, item := range items {
		if existing[item] > 0 {
			existing[item]--
			lr.Skipped++
			continue
		}
		missing = append(missing, item)
	}

	// New tasks land at the top of a Google Tasks list; insert last item first.
	for i := len(missing) - 1; i >= 0; i-- {
		if !opts.DryRun {
			if err := svc.CreateTask(ctx, list.ID, missing[i]); err != nil {
				return lr, err
			}
		}
		lr.Added++
	}
	return lr, nil
}
