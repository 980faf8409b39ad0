// Package memory is a process-local record store for the reference server.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"sync"

	"expensetracker/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

// New returns a store holding seed in order. Records without an id, and
// records repeating an id already seen, get fresh ids above the highest
// numeric id in seed.
func New(seed ...core.Expense) *Store {
	s := &Store{nextID: 1}
	for _, e := range seed {
		if n, err := strconv.ParseInt(e.ID, 10, 64); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}

	seen := make(map[string]struct{}, len(seed))
	for _, e := range seed {
		if _, dup := seen[e.ID]; e.ID == "" || dup {
			e.ID = s.allocID()
		}
		seen[e.ID] = struct{}{}
		s.items = append(s.items, e)
	}
	return s
}

// NewFromFile seeds the store from a JSON array of records. A missing file
// gives an empty store.
func NewFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed []core.Expense
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return New(seed...), nil
}

func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Create stores e under a fresh id and returns the stored record.
func (s *Store) Create(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.allocID()
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) Update(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(e.ID)
	if i < 0 {
		return fmt.Errorf("expense %q: %w", e.ID, core.ErrNotFound)
	}
	s.items[i] = e
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("expense %q: %w", id, core.ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	return nil
}

func (s *Store) Close() error { return nil }

// caller holds mu
func (s *Store) index(id string) int {
	return slices.IndexFunc(s.items, func(e core.Expense) bool { return e.ID == id })
}

func (s *Store) allocID() string {
	id := strconv.FormatInt(s.nextID, 10)
	s.nextID++
	return id
}
