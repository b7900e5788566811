package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// snapshotIndent matches the indentation of snapshots written by earlier releases.
const snapshotIndent = "    "

// Load reads the snapshot at path. A missing file yields an empty store.
// Names that differ only in case are rejected.
func Load(path string) (*Store, error) {
	s := New(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := s.lists.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("invalid snapshot %s: %w", path, err)
	}
	seen := make(map[string]string, s.lists.Len())
	for pair := s.lists.Oldest(); pair != nil; pair = pair.Next() {
		key := Normalize(pair.Key)
		if first, dup := seen[key]; dup {
			return nil, fmt.Errorf("invalid snapshot %s: %w: %q and %q", path, ErrAlreadyExists, first, pair.Key)
		}
		seen[key] = pair.Key
		// null arrays would round-trip as null instead of []
		if pair.Value == nil {
			pair.Value = []string{}
		}
	}
	return s, nil
}

// Marshal returns the snapshot encoding of the store.
func (s *Store) Marshal() ([]byte, error) {
	raw, err := s.lists.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", snapshotIndent); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Save rewrites the whole snapshot file. Memory-only stores are a no-op.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".lists-*.json")
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
