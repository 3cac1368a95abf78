package service

import (
	"context"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/store"
)

// TaskService defines the contract the HTTP layer consumes. It exists to
// decouple handlers from the concrete store variant; which backend is active
// is decided once, at startup.
type TaskService interface {
	CreateTask(ctx context.Context, title, description string, completed bool) (*tasks.Task, error)
	ListTasks(ctx context.Context) ([]*tasks.Task, error)
	GetTask(ctx context.Context, id string) (*tasks.Task, error)
	UpdateTask(ctx context.Context, id string, patch tasks.TaskPatch) (*tasks.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Healthy reports whether the backing store is reachable.
	Healthy(ctx context.Context) bool

	// Backend names the active store variant for health reporting.
	Backend() string
}

// taskService is the single implementation. Behavior differs only through the
// injected store; no business logic lives here beyond delegation and logging.
type taskService struct {
	store   store.TaskStore
	backend string
	logger  *logger.Logger
}

var _ TaskService = (*taskService)(nil)

// New constructs a TaskService bound to the given store. The backend name is
// informational, surfaced by the health endpoint.
func New(taskStore store.TaskStore, backend string, lg *logger.Logger) TaskService {
	return &taskService{
		store:   taskStore,
		backend: backend,
		logger:  lg,
	}
}

func (s *taskService) CreateTask(ctx context.Context, title, description string, completed bool) (*tasks.Task, error) {
	task, err := s.store.Create(ctx, title, description, completed)
	if err != nil {
		return nil, err
	}

	s.logger.Store(s.backend, "create", "task created", map[string]any{
		"task_id": task.ID,
	})
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]*tasks.Task, error) {
	return s.store.List(ctx)
}

func (s *taskService) GetTask(ctx context.Context, id string) (*tasks.Task, error) {
	return s.store.Get(ctx, id)
}

func (s *taskService) UpdateTask(ctx context.Context, id string, patch tasks.TaskPatch) (*tasks.Task, error) {
	task, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Store(s.backend, "update", "task updated", map[string]any{
		"task_id": task.ID,
	})
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Store(s.backend, "delete", "task deleted", map[string]any{
		"task_id": id,
	})
	return nil
}

func (s *taskService) Healthy(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

func (s *taskService) Backend() string {
	return s.backend
}
