package store

import (
	"context"
	"strings"
	"time"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
)

// TaskStore defines the contract for task persistence. Two implementations
// exist: an in-memory store used when no external backend is configured, and
// a Mongo-backed store. Both must satisfy the same behavior so the HTTP layer
// never needs to know which one is active.
type TaskStore interface {
	// Create validates the title, assigns a new unique ID and timestamps, and
	// persists the task. The returned task is fully populated.
	Create(ctx context.Context, title, description string, completed bool) (*tasks.Task, error)

	// List returns all tasks in a stable, backend-defined order: insertion
	// order for the in-memory store, natural collection order for Mongo.
	List(ctx context.Context) ([]*tasks.Task, error)

	// Get retrieves a task by ID.
	Get(ctx context.Context, id string) (*tasks.Task, error)

	// Update merges the supplied patch fields over the existing task and
	// refreshes updated_at. Absent fields keep their prior values.
	Update(ctx context.Context, id string, patch tasks.TaskPatch) (*tasks.Task, error)

	// Delete removes the task. Deleting an absent ID reports not found,
	// including a second delete of the same ID.
	Delete(ctx context.Context, id string) error

	// Ping reports backend liveness for health checks.
	Ping(ctx context.Context) error

	// Close releases backend resources on shutdown.
	Close(ctx context.Context) error
}

// validateTitle enforces the shared title rule: required and non-empty after
// trimming. The stored value keeps the caller's original spacing.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.NewValidationError("task title is required and must not be blank")
	}
	return nil
}

// timestamp returns the current UTC time at millisecond precision. BSON
// datetimes carry milliseconds, so both stores round the same way to keep
// round-trip equality identical across backends.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
