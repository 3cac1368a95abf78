package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
)

// Compile-time check to ensure MemoryTaskStore implements TaskStore interface
var _ TaskStore = (*MemoryTaskStore)(nil)

// MemoryTaskStore provides an in-memory implementation of the task persistence
// layer, used when no Mongo connection string is configured. The population is
// scoped to the process lifetime; nothing survives a restart.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	byID  map[string]*tasks.Task
	order []string
}

// NewMemoryTaskStore creates and initializes a new MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{
		byID: make(map[string]*tasks.Task),
	}
}

// Create assigns a fresh UUID and timestamps and stores the task.
func (s *MemoryTaskStore) Create(_ context.Context, title, description string, completed bool) (*tasks.Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := timestamp()
	task := &tasks.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.byID[task.ID] = task
	s.order = append(s.order, task.ID)

	copied := *task
	return &copied, nil
}

// List returns all tasks in insertion order.
func (s *MemoryTaskStore) List(_ context.Context) ([]*tasks.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*tasks.Task, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.byID[id]
		out = append(out, &copied)
	}
	return out, nil
}

// Get retrieves a task by its ID.
// It returns a copy of the task to prevent external callers from unintentionally
// modifying the state of the task stored within the map.
func (s *MemoryTaskStore) Get(_ context.Context, id string) (*tasks.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("task not found")
	}

	copied := *task
	return &copied, nil
}

// Update merges the patch over the stored task and refreshes updated_at.
// A blank supplied title rejects the whole patch and leaves the task untouched.
func (s *MemoryTaskStore) Update(_ context.Context, id string, patch tasks.TaskPatch) (*tasks.Task, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("task not found")
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	task.UpdatedAt = timestamp()

	copied := *task
	return &copied, nil
}

// Delete removes the task. A second delete of the same ID reports not found.
func (s *MemoryTaskStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errors.NewNotFoundError("task not found")
	}

	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ping always succeeds: there is no backend to be unreachable.
func (s *MemoryTaskStore) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryTaskStore) Close(_ context.Context) error {
	return nil
}
