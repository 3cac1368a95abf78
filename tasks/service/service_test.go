package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/logger"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/service"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks/store"
)

func newTestService() service.TaskService {
	return service.New(store.NewMemoryTaskStore(), "memory", logger.New("ERROR", io.Discard))
}

func TestTaskService_CreateAndGet(t *testing.T) {
	t.Parallel()
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "Service create", "through the service", false)
	require.NoError(t, err)
	assert.Assert(t, created.ID != "")

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Service create", got.Title)
}

func TestTaskService_PassesStoreErrorsThrough(t *testing.T) {
	t.Parallel()
	svc := newTestService()
	ctx := context.Background()

	// The service must not catch or translate store errors; the HTTP layer
	// is the sole translator.
	_, err := svc.CreateTask(ctx, "  ", "", false)
	taskErr, ok := errors.IsTaskError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ValidationError, taskErr.Type)

	_, err = svc.GetTask(ctx, "missing")
	taskErr, ok = errors.IsTaskError(err)
	require.True(t, ok)
	assert.Equal(t, errors.NotFoundError, taskErr.Type)

	err = svc.DeleteTask(ctx, "missing")
	taskErr, ok = errors.IsTaskError(err)
	require.True(t, ok)
	assert.Equal(t, errors.NotFoundError, taskErr.Type)
}

func TestTaskService_UpdateDelegates(t *testing.T) {
	t.Parallel()
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, "Delegate", "", false)
	require.NoError(t, err)

	completed := true
	updated, err := svc.UpdateTask(ctx, created.ID, tasks.TaskPatch{Completed: &completed})
	require.NoError(t, err)
	assert.Equal(t, true, updated.Completed)
	assert.Equal(t, "Delegate", updated.Title)
}

func TestTaskService_HealthAndBackend(t *testing.T) {
	t.Parallel()
	svc := newTestService()

	assert.Equal(t, "memory", svc.Backend())
	assert.Assert(t, svc.Healthy(context.Background()))
}
