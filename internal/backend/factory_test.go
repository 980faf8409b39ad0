package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"expensetracker/internal/config"
	"expensetracker/internal/core"
)

func TestCreateBackend(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "memory", config: Config{Type: MemoryBackend}},
		{name: "memory with missing seed file", config: Config{Type: MemoryBackend, SeedFile: filepath.Join(dir, "none.json")}},
		{name: "sqlite", config: Config{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "expenses.db")}},
		{name: "sqlite without path", config: Config{Type: SQLiteBackend}, wantErr: "path is required"},
		{name: "unknown type", config: Config{Type: "sheets"}, wantErr: "invalid backend type"},
	}

	f := NewFactory(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.CreateBackend(context.Background(), tt.config)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			defer res.Cleanup()

			created, err := res.Backend.Create(context.Background(), core.Expense{Title: "Coffee", Amount: "-3.50"})
			if err != nil || created.ID == "" {
				t.Fatalf("create through backend: %+v err=%v", created, err)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", MemorySeedFile: "seed.json"})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "x.db" || cfg.SeedFile != "seed.json" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := FromAppConfig(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
