// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"listbot/internal/service"
)

// DefaultListID is the ID of the list every account starts with.
const DefaultListID = "@default"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
// Like Google Tasks, new tasks are inserted at the top of a list.
type FakeService struct {
	mu     sync.RWMutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks
	nextID int

	// Error injection for testing
	ListListsErr     error
	CreateListErr    error
	ListOpenTasksErr map[string]error // listID -> error
	CreateTaskErr    error

	// Calls counts mutating calls by method name.
	Calls map[string]int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks:            make(map[string][]service.Task),
		ListOpenTasksErr: make(map[string]error),
		Calls:            make(map[string]int),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks"},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = nil
	}
}

// AddTask appends a task to the bottom of a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     taskID,
		Title:  title,
		Status: "needsAction",
	})
}

// CompleteTask marks a task as completed.
func (f *FakeService) CompleteTask(listID, taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			f.tasks[listID][i].Status = "completed"
		}
	}
}

// Titles returns the titles of all tasks of the list with the given title, top first.
func (f *FakeService) Titles(listTitle string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.Title == listTitle {
			var titles []string
			for _, t := range f.tasks[l.ID] {
				titles = append(titles, t.Title)
			}
			return titles
		}
	}
	return nil
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls["CreateList"]++
	f.nextID++
	list := service.TaskList{ID: fmt.Sprintf("list-%d", f.nextID), Title: name}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	return list, nil
}

// ListOpenTasks implements service.Service.
func (f *FakeService) ListOpenTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if err, ok := f.ListOpenTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}

	var open []service.Task
	for _, t := range tasks {
		if t.Status == "needsAction" {
			open = append(open, t)
		}
	}
	return open, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return ErrNotFound
	}

	f.Calls["CreateTask"]++
	f.nextID++
	task := service.Task{
		ID:     fmt.Sprintf("task-%d", f.nextID),
		Title:  title,
		Status: "needsAction",
	}
	f.tasks[listID] = append([]service.Task{task}, f.tasks[listID]...)
	return nil
}
