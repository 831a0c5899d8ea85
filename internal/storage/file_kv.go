package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileKV keeps every slot in one JSON object on disk. Writes go through a
// temp file and rename so a crash never leaves a half-written file. A file
// that does not decode reads as ErrCorrupt; the next Set moves it aside to
// <path>.corrupt and starts over with an empty object.
type FileKV struct {
	mu   sync.Mutex
	path string
}

func NewFileKV(path string) (*FileKV, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: file path is empty")
	}
	return &FileKV{path: trimmed}, nil
}

func (f *FileKV) Path() string {
	return f.path
}

// CorruptPath is where an undecodable file is kept once it is replaced.
func (f *FileKV) CorruptPath() string {
	return f.path + ".corrupt"
}

func (f *FileKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := slots[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		if err := os.Rename(f.path, f.CorruptPath()); err != nil {
			return fmt.Errorf("move aside %s: %w", f.path, err)
		}
		slots, err = make(map[string]string), nil
	}
	if err != nil {
		return err
	}
	slots[key] = value
	return f.write(slots)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return ErrNotFound
	}
	delete(slots, key)
	return f.write(slots)
}

func (f *FileKV) read() (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, f.path, err)
	}
	return out, nil
}

func (f *FileKV) write(slots map[string]string) error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
