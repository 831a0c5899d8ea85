package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/tabtodo/internal/model"
)

const DefaultKey = "todos"

// TaskStore keeps the whole collection as one JSON array under one key.
type TaskStore struct {
	KV  KVStore
	Key string
}

type LoadResult struct {
	Tasks    []model.Task
	Warnings []string
}

func NewTaskStore(kv KVStore, key string) *TaskStore {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &TaskStore{KV: kv, Key: key}
}

// Load returns an empty collection for a missing, blank or undecodable slot,
// and for a backend reporting ErrCorrupt. Other backend failures are errors.
func (s *TaskStore) Load(ctx context.Context) (LoadResult, error) {
	raw, err := s.KV.Get(ctx, s.Key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoadResult{Tasks: []model.Task{}}, nil
		}
		if errors.Is(err, ErrCorrupt) {
			return LoadResult{
				Tasks:    []model.Task{},
				Warnings: []string{fmt.Sprintf("discarding unreadable %s store: %v", s.Key, err)},
			}, nil
		}
		return LoadResult{}, fmt.Errorf("read %s: %w", s.Key, err)
	}
	tasks, err := Decode(raw)
	if err != nil {
		return LoadResult{
			Tasks:    []model.Task{},
			Warnings: []string{fmt.Sprintf("discarding unreadable %s snapshot: %v", s.Key, err)},
		}, nil
	}
	return LoadResult{Tasks: tasks, Warnings: CheckSnapshot(raw)}, nil
}

func (s *TaskStore) Save(ctx context.Context, tasks []model.Task) error {
	payload, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.KV.Set(ctx, s.Key, payload); err != nil {
		return fmt.Errorf("write %s: %w", s.Key, err)
	}
	return nil
}

func Encode(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(payload), nil
}

func Decode(raw string) ([]model.Task, error) {
	if strings.TrimSpace(raw) == "" {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
