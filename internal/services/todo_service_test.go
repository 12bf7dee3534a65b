package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowal/todoapi/internal/repositories"
)

func TestTodoService_Create(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "  buy milk  ", false)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", todo.Text)
	assert.Equal(t, creatorID, todo.CreatorID)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
}

func TestTodoService_Create_CompletedStampsTime(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()

	todo, err := svc.Create(ctx, uuid.New(), "already done", true)
	require.NoError(t, err)
	assert.True(t, todo.Completed)
	require.NotNil(t, todo.CompletedAt)
}

func TestTodoService_Create_EmptyText(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), "   ", false)
	assert.ErrorIs(t, err, ErrEmptyTodoText)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTodoService_OwnershipIsolation(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()

	ownerA := uuid.New()
	ownerB := uuid.New()

	todoA, err := svc.Create(ctx, ownerA, "A's todo", false)
	require.NoError(t, err)
	todoB, err := svc.Create(ctx, ownerB, "B's todo", false)
	require.NoError(t, err)

	// A asking for B's todo gets "not found", the same answer as for an id
	// that does not exist at all.
	_, crossErr := svc.Get(ctx, ownerA, todoB.ID)
	_, absentErr := svc.Get(ctx, ownerA, uuid.New())
	assert.ErrorIs(t, crossErr, ErrTodoNotFound)
	assert.Equal(t, absentErr, crossErr)

	// A's own todo is reachable.
	got, err := svc.Get(ctx, ownerA, todoA.ID)
	require.NoError(t, err)
	assert.Equal(t, "A's todo", got.Text)

	// Cross-owner update and delete fail the same way.
	completed := true
	_, err = svc.Update(ctx, ownerA, todoB.ID, TodoPatch{Completed: &completed})
	assert.ErrorIs(t, err, ErrTodoNotFound)
	_, err = svc.Delete(ctx, ownerA, todoB.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoService_Update_CompletionLifecycle(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "task", false)
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(ctx, creatorID, todo.ID, TodoPatch{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)

	// Un-completing clears the timestamp.
	completed = false
	updated, err = svc.Update(ctx, creatorID, todo.ID, TodoPatch{Completed: &completed})
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)
}

func TestTodoService_Update_Text(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "old text", false)
	require.NoError(t, err)

	text := "new text"
	updated, err := svc.Update(ctx, creatorID, todo.ID, TodoPatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "new text", updated.Text)
	assert.False(t, updated.Completed, "untouched fields stay as they were")

	empty := "  "
	_, err = svc.Update(ctx, creatorID, todo.ID, TodoPatch{Text: &empty})
	assert.ErrorIs(t, err, ErrEmptyTodoText)
}

func TestTodoService_Delete_ReturnsRemoved(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()
	creatorID := uuid.New()

	todo, err := svc.Create(ctx, creatorID, "to be removed", false)
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, creatorID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, removed.ID)
	assert.Equal(t, "to be removed", removed.Text)

	_, err = svc.Get(ctx, creatorID, todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestTodoService_List(t *testing.T) {
	svc := NewTodoService(repositories.NewInMemoryTodoRepository())
	ctx := context.Background()

	mine := uuid.New()
	theirs := uuid.New()

	_, err := svc.Create(ctx, mine, "one", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, mine, "two", false)
	require.NoError(t, err)
	_, err = svc.Create(ctx, theirs, "other", false)
	require.NoError(t, err)

	todos, err := svc.List(ctx, mine)
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}
