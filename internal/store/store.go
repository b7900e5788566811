// Package store holds the named lists and mirrors them to a JSON snapshot file.
package store

import (
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrAlreadyExists is returned when a list name collides with an existing one.
	ErrAlreadyExists = errors.New("list already exists")

	// ErrListNotFound is returned when a name does not resolve to a stored list.
	ErrListNotFound = errors.New("list not found")

	// ErrIndexOutOfRange is returned when an item index is outside the list bounds.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Store maps list names to their items, keeping the order lists were created in.
// A Store is not safe for concurrent use; callers serialize access.
type Store struct {
	path  string
	lists *orderedmap.OrderedMap[string, []string]
}

// New returns an empty store that persists to path.
// An empty path gives a memory-only store.
func New(path string) *Store {
	return &Store{
		path:  path,
		lists: orderedmap.New[string, []string](),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of lists.
func (s *Store) Len() int {
	return s.lists.Len()
}

// Create adds an empty list under the trimmed name.
func (s *Store) Create(name string) (string, error) {
	name = strings.TrimSpace(name)
	if existing, ok := s.Resolve(name); ok {
		return existing, fmt.Errorf("%w: %s", ErrAlreadyExists, existing)
	}
	s.lists.Set(name, []string{})
	return name, s.Save()
}

// Add appends the trimmed item to the named list and returns the canonical name.
func (s *Store) Add(name, item string) (string, error) {
	canonical, ok := s.Resolve(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrListNotFound, strings.TrimSpace(name))
	}
	items, _ := s.lists.Get(canonical)
	s.lists.Set(canonical, append(items, strings.TrimSpace(item)))
	return canonical, s.Save()
}

// Names returns the canonical list names in creation order.
func (s *Store) Names() []string {
	names := make([]string, 0, s.lists.Len())
	for pair := s.lists.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Items returns the canonical name and a copy of the items of the named list.
func (s *Store) Items(name string) (string, []string, error) {
	canonical, ok := s.Resolve(name)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrListNotFound, strings.TrimSpace(name))
	}
	items, _ := s.lists.Get(canonical)
	out := make([]string, len(items))
	copy(out, items)
	return canonical, out, nil
}

// RemoveAt deletes the item at the 0-based index and returns it.
func (s *Store) RemoveAt(name string, index int) (string, error) {
	canonical, items, err := s.live(name, index)
	if err != nil {
		return "", err
	}
	removed := items[index]
	items = append(items[:index:index], items[index+1:]...)
	s.lists.Set(canonical, items)
	return removed, s.Save()
}

// ReplaceAt overwrites the item at the 0-based index and returns the previous text.
func (s *Store) ReplaceAt(name string, index int, text string) (string, error) {
	canonical, items, err := s.live(name, index)
	if err != nil {
		return "", err
	}
	old := items[index]
	items[index] = strings.TrimSpace(text)
	s.lists.Set(canonical, items)
	return old, s.Save()
}

// live resolves name and bounds-checks index against the stored slice.
func (s *Store) live(name string, index int) (string, []string, error) {
	canonical, ok := s.Resolve(name)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrListNotFound, strings.TrimSpace(name))
	}
	items, _ := s.lists.Get(canonical)
	if index < 0 || index >= len(items) {
		return "", nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index+1)
	}
	return canonical, items, nil
}
