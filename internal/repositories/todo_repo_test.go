package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowal/todoapi/internal/models"
)

func TestTodoRepository_CreateAndGet(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresTodoRepository(pool)
	ctx := context.Background()

	creatorID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, creatorID)

	todo := &models.Todo{
		CreatorID: creatorID,
		Text:      "walk the dog",
	}

	err := repo.Create(ctx, todo)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, todo.ID, "ID should be generated")
	assert.False(t, todo.CreatedAt.IsZero(), "CreatedAt should be set")

	retrieved, err := repo.GetByID(ctx, todo.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, "walk the dog", retrieved.Text)
	assert.False(t, retrieved.Completed)
	assert.Nil(t, retrieved.CompletedAt)
}

func TestTodoRepository_OwnershipScoping(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresTodoRepository(pool)
	ctx := context.Background()

	ownerID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, ownerID)
	strangerID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, strangerID)

	todo := &models.Todo{CreatorID: ownerID, Text: "owner's secret"}
	require.NoError(t, repo.Create(ctx, todo))

	// The stranger sees someone else's todo as absent, never as forbidden.
	_, err := repo.GetByID(ctx, todo.ID, strangerID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, todo.ID, strangerID)
	assert.ErrorIs(t, err, ErrNotFound)

	foreign := &models.Todo{ID: todo.ID, CreatorID: strangerID, Text: "hijacked"}
	err = repo.Update(ctx, foreign)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner still sees it untouched.
	retrieved, err := repo.GetByID(ctx, todo.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "owner's secret", retrieved.Text)
}

func TestTodoRepository_Update(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresTodoRepository(pool)
	ctx := context.Background()

	creatorID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, creatorID)

	todo := &models.Todo{CreatorID: creatorID, Text: "original"}
	require.NoError(t, repo.Create(ctx, todo))

	now := time.Now()
	todo.Text = "updated"
	todo.Completed = true
	todo.CompletedAt = &now

	err := repo.Update(ctx, todo)
	require.NoError(t, err)

	retrieved, err := repo.GetByID(ctx, todo.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, "updated", retrieved.Text)
	assert.True(t, retrieved.Completed)
	require.NotNil(t, retrieved.CompletedAt)
}

func TestTodoRepository_ListByCreator(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresTodoRepository(pool)
	ctx := context.Background()

	creatorID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, creatorID)
	otherID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, otherID)

	for _, text := range []string{"first", "second"} {
		require.NoError(t, repo.Create(ctx, &models.Todo{CreatorID: creatorID, Text: text}))
	}
	require.NoError(t, repo.Create(ctx, &models.Todo{CreatorID: otherID, Text: "not yours"}))

	todos, err := repo.ListByCreator(ctx, creatorID)
	require.NoError(t, err)
	assert.Len(t, todos, 2, "Only the creator's todos should be listed")
	assert.Equal(t, "first", todos[0].Text)
	assert.Equal(t, "second", todos[1].Text)
}

func TestTodoRepository_Delete(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresTodoRepository(pool)
	ctx := context.Background()

	creatorID := setupTestAccount(t, ctx, pool)
	defer cleanupTestAccount(t, pool, ctx, creatorID)

	todo := &models.Todo{CreatorID: creatorID, Text: "doomed"}
	require.NoError(t, repo.Create(ctx, todo))

	removed, err := repo.Delete(ctx, todo.ID, creatorID)
	require.NoError(t, err)
	assert.Equal(t, "doomed", removed.Text, "Delete should return the removed todo")

	_, err = repo.GetByID(ctx, todo.ID, creatorID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	pool := getTestPool(t)
	repo := NewPostgresAccountRepository(pool)
	ctx := context.Background()

	email := "dup-" + uuid.New().String() + "@example.com"

	first := &models.Account{Email: email, PasswordHash: "hash-1"}
	require.NoError(t, repo.Create(ctx, first))
	defer cleanupTestAccount(t, pool, ctx, first.ID)

	second := &models.Account{Email: email, PasswordHash: "hash-2"}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

// Helper functions for test setup

// getTestPool returns a connection pool for testing, skipping the test when
// TEST_DATABASE_URL is not set. The schema must already be migrated.
func getTestPool(t *testing.T) *pgxpool.Pool {
	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping Postgres integration test")
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	require.NoError(t, err, "Failed to connect to test database")
	return pool
}

// setupTestAccount creates an account to satisfy the todos foreign key
func setupTestAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool) uuid.UUID {
	repo := NewPostgresAccountRepository(pool)
	account := &models.Account{
		Email:        "test-" + uuid.New().String() + "@example.com",
		PasswordHash: "test-hash",
	}
	err := repo.Create(ctx, account)
	require.NoError(t, err, "Failed to create test account")
	return account.ID
}

// cleanupTestAccount removes test data
func cleanupTestAccount(t *testing.T, pool *pgxpool.Pool, ctx context.Context, accountID uuid.UUID) {
	if _, err := pool.Exec(ctx, `DELETE FROM todos WHERE creator_id = $1`, accountID); err != nil {
		t.Logf("Warning: failed to cleanup test todos: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID); err != nil {
		t.Logf("Warning: failed to cleanup test account: %v", err)
	}
}
