package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"expensetracker/internal/core"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.Create(ctx, core.Expense{ID: "x", Title: "Coffee", Amount: "-3.50"})
	if err != nil || a.ID != "1" {
		t.Fatalf("unexpected create: %+v err=%v", a, err)
	}
	b, _ := s.Create(ctx, core.Expense{Title: "Salary", Amount: "2500", SelectedType: core.Income})
	if b.ID != "2" {
		t.Fatalf("expected id 2, got %q", b.ID)
	}

	a.Title = "Espresso"
	if err := s.Update(ctx, a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := s.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	list, _ := s.List(ctx)
	if len(list) != 1 || list[0] != a {
		t.Fatalf("unexpected list %+v", list)
	}

	// ids are never reused
	c, _ := s.Create(ctx, core.Expense{Title: "Tea", Amount: "-2"})
	if c.ID != "3" {
		t.Fatalf("expected id 3, got %q", c.ID)
	}
}

func TestMemoryStoreUnknownID(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Update(ctx, core.Expense{ID: "7"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "7"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New(core.Expense{Title: "Rent", Amount: "-900"})
	list, _ := s.List(ctx)
	list[0].Title = "changed"

	again, _ := s.List(ctx)
	if again[0].Title != "Rent" {
		t.Fatalf("store mutated through List result")
	}
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFromFile(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if list, _ := s.List(context.Background()); len(list) != 0 {
		t.Fatalf("expected empty store, got %v", list)
	}

	path := filepath.Join(dir, "seed.json")
	seed := `[{"id":"5","title":"Rent","amount":"-900","selectedType":"Expense","selectedDate":"2025-01-01"},{"title":"Salary","amount":"2500","selectedType":"Income","selectedDate":""}]`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	s, err = NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile: %v", err)
	}
	list, _ := s.List(context.Background())
	if len(list) != 2 || list[0].ID != "5" || list[1].ID != "6" {
		t.Fatalf("unexpected seeded ids %+v", list)
	}
	created, _ := s.Create(context.Background(), core.Expense{Title: "Tea", Amount: "-2"})
	if created.ID != "7" {
		t.Fatalf("expected id 7, got %q", created.ID)
	}

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := NewFromFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	tests := []struct {
		name string
		seed []core.Expense
		want []string
	}{
		{
			name: "missing id before explicit id",
			seed: []core.Expense{{Title: "a"}, {ID: "1", Title: "b"}},
			want: []string{"2", "1"},
		},
		{
			name: "duplicate explicit ids",
			seed: []core.Expense{{ID: "3", Title: "a"}, {ID: "3", Title: "b"}, {Title: "c"}},
			want: []string{"3", "4", "5"},
		},
		{
			name: "non numeric ids are kept",
			seed: []core.Expense{{ID: "x", Title: "a"}, {Title: "b"}, {ID: "x", Title: "c"}},
			want: []string{"x", "1", "2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, _ := New(tt.seed...).List(context.Background())
			var got []string
			for _, e := range list {
				got = append(got, e.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ids %v, want %v", got, tt.want)
			}
		})
	}
}
