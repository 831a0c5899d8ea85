package storage

import (
	"io"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// BackendFor picks the backend from the path: ".json" files use FileKV,
// anything else is a SQLite database.
func BackendFor(path string, memory bool) Backend {
	if memory {
		return BackendMemory
	}
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(path)), ".json") {
		return BackendFile
	}
	return BackendSQLite
}

// OpenKV opens the backend chosen by BackendFor. The closer is a no-op for
// backends that hold no handle.
func OpenKV(path string, memory bool) (KVStore, io.Closer, Backend, error) {
	backend := BackendFor(path, memory)
	switch backend {
	case BackendMemory:
		return NewMemoryKV(), io.NopCloser(nil), backend, nil
	case BackendFile:
		kv, err := NewFileKV(path)
		if err != nil {
			return nil, nil, backend, err
		}
		return kv, io.NopCloser(nil), backend, nil
	default:
		kv, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, backend, err
		}
		return kv, kv, backend, nil
	}
}
