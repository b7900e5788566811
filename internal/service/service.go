// Package service defines the interface of the remote task service lists are exported to.
package service

import "context"

// Service defines the remote operations the export needs.
// Google Tasks calls go through this interface; export never imports the SDK.
type Service interface {
	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// ListOpenTasks returns every open task of a list, across all pages.
	ListOpenTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a new task in the specified list.
	CreateTask(ctx context.Context, listID, title string) error
}
