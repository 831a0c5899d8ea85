package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestBackendFor(t *testing.T) {
	cases := []struct {
		path   string
		memory bool
		want   Backend
	}{
		{"tabtodo.db", false, BackendSQLite},
		{"state/tabtodo.JSON", false, BackendFile},
		{"tabtodo.json", true, BackendMemory},
		{"", true, BackendMemory},
	}
	for _, tc := range cases {
		if got := BackendFor(tc.path, tc.memory); got != tc.want {
			t.Fatalf("BackendFor(%q, %v) = %s, want %s", tc.path, tc.memory, got, tc.want)
		}
	}
}

func TestOpenKVBackends(t *testing.T) {
	dir := t.TempDir()
	for _, path := range []string{filepath.Join(dir, "tabtodo.db"), filepath.Join(dir, "tabtodo.json")} {
		kv, closer, _, err := OpenKV(path, false)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		if err := kv.Set(context.Background(), DefaultKey, "[]"); err != nil {
			t.Fatalf("set on %s: %v", path, err)
		}
		if err := closer.Close(); err != nil {
			t.Fatalf("close %s: %v", path, err)
		}
	}
}
