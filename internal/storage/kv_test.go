package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupSQLiteKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "tabtodo-test.db"))
	if err != nil {
		t.Fatalf("open sqlite kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func setupFileKV(t *testing.T) *FileKV {
	t.Helper()
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "state", "tabtodo.json"))
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	return kv
}

func TestKVStoreContract(t *testing.T) {
	stores := map[string]func(t *testing.T) KVStore{
		"sqlite": func(t *testing.T) KVStore { return setupSQLiteKV(t) },
		"memory": func(t *testing.T) KVStore { return NewMemoryKV() },
		"file":   func(t *testing.T) KVStore { return setupFileKV(t) },
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			kv := open(t)
			ctx := context.Background()

			if _, err := kv.Get(ctx, "todos"); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound on empty store, got %v", err)
			}
			if err := kv.Set(ctx, "todos", `[{"id":"1"}]`); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, "todos", `[]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := kv.Get(ctx, "todos")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != "[]" {
				t.Fatalf("expected overwritten value, got %q", got)
			}
			if err := kv.Delete(ctx, "todos"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := kv.Delete(ctx, "todos"); err != ErrNotFound {
				t.Fatalf("expected ErrNotFound on second delete, got %v", err)
			}
		})
	}
}

func TestNewSQLiteKVRejectsNilDB(t *testing.T) {
	if _, err := NewSQLiteKV(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabtodo.json")
	ctx := context.Background()

	first, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	if err := first.Set(ctx, "todos", `[{"id":"7"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(ctx, "todos")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[{"id":"7"}]` {
		t.Fatalf("unexpected value: %q", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
}

func TestFileKVRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabtodo.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	kv, err := NewFileKV(path)
	if err != nil {
		t.Fatalf("new file kv: %v", err)
	}
	ctx := context.Background()
	if _, err := kv.Get(ctx, "todos"); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}

	if err := kv.Set(ctx, "todos", "[]"); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
	got, err := kv.Get(ctx, "todos")
	if err != nil || got != "[]" {
		t.Fatalf("expected fresh slot, got %q err=%v", got, err)
	}
	backup, err := os.ReadFile(kv.CorruptPath())
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "{not json" {
		t.Fatalf("expected corrupt bytes kept aside, got %q", backup)
	}
}

func TestNewFileKVRejectsEmptyPath(t *testing.T) {
	if _, err := NewFileKV("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
