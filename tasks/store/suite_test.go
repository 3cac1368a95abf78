package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/errors"
	"github.com/kavia-common/fullstack-application-scaffold-7150-7159/tasks"
)

// runTaskStoreSuite exercises the behavior every TaskStore variant must
// share. The memory tests run it directly; the mongo integration tests run
// the identical suite against a containerized backend. Nothing in here may
// assert backend-specific internals.
func runTaskStoreSuite(t *testing.T, newStore func(t *testing.T) TaskStore) {
	t.Run("create then get returns equal task", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Write report", "quarterly numbers", false)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Assert(t, created.ID != "")
		assert.Equal(t, "Write report", created.Title)
		assert.Equal(t, "quarterly numbers", created.Description)
		assert.Equal(t, false, created.Completed)
		assert.Assert(t, !created.CreatedAt.IsZero())
		assert.Assert(t, !created.UpdatedAt.Before(created.CreatedAt))

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Description, got.Description)
		assert.Equal(t, created.Completed, got.Completed)
		assert.Assert(t, created.CreatedAt.Equal(got.CreatedAt))
		assert.Assert(t, created.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := s.Create(ctx, title, "", false)
			require.Error(t, err)
			taskErr, ok := errors.IsTaskError(err)
			require.True(t, ok)
			assert.Equal(t, errors.ValidationError, taskErr.Type)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, len(list))
	})

	t.Run("absent id fails get, update and delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const missing = "00000000-0000-0000-0000-000000000000"

		_, err := s.Get(ctx, missing)
		requireNotFound(t, err)

		completed := true
		_, err = s.Update(ctx, missing, tasks.TaskPatch{Completed: &completed})
		requireNotFound(t, err)

		requireNotFound(t, s.Delete(ctx, missing))
	})

	t.Run("update with blank title leaves task unchanged", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Original title", "keep me", false)
		require.NoError(t, err)

		blank := "   "
		_, err = s.Update(ctx, created.ID, tasks.TaskPatch{Title: &blank})
		require.Error(t, err)
		taskErr, ok := errors.IsTaskError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ValidationError, taskErr.Type)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original title", got.Title)
		assert.Equal(t, "keep me", got.Description)
		assert.Assert(t, created.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Partial update", "unchanged description", false)
		require.NoError(t, err)

		// Keep a visible gap so updated_at moves even on coarse clocks.
		time.Sleep(5 * time.Millisecond)

		completed := true
		updated, err := s.Update(ctx, created.ID, tasks.TaskPatch{Completed: &completed})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, true, updated.Completed)
		assert.Assert(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.Assert(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("delete removes task from get and list", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		kept, err := s.Create(ctx, "Keep", "", false)
		require.NoError(t, err)
		doomed, err := s.Create(ctx, "Remove", "", false)
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, doomed.ID))

		_, err = s.Get(ctx, doomed.ID)
		requireNotFound(t, err)

		// Second delete of the same id fails the same way.
		requireNotFound(t, s.Delete(ctx, doomed.ID))

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, len(list))
		assert.Equal(t, kept.ID, list[0].ID)
	})

	t.Run("buy milk lifecycle", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, "Buy milk", "", false)
		require.NoError(t, err)
		assert.Assert(t, created.ID != "")
		assert.Equal(t, "Buy milk", created.Title)
		assert.Equal(t, "", created.Description)
		assert.Equal(t, false, created.Completed)

		completed := true
		updated, err := s.Update(ctx, created.ID, tasks.TaskPatch{Completed: &completed})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, true, updated.Completed)

		require.NoError(t, s.Delete(ctx, created.ID))

		_, err = s.Get(ctx, created.ID)
		requireNotFound(t, err)
	})

	t.Run("ping reports healthy", func(t *testing.T) {
		s := newStore(t)
		assert.NilError(t, s.Ping(context.Background()))
	})
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	taskErr, ok := errors.IsTaskError(err)
	require.True(t, ok)
	require.Equal(t, errors.NotFoundError, taskErr.Type)
}
