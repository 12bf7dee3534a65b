package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkowal/todoapi/internal/models"
)

func TestInMemoryTokenRepository_AddDeduplicates(t *testing.T) {
	repo := NewInMemoryTokenRepository()
	ctx := context.Background()
	accountID := uuid.New()

	token := models.AccountToken{Purpose: models.TokenPurposeAuth, Token: "token-abc"}

	// Set semantics, same as the Redis repository: adding the same member
	// twice stores it once.
	require.NoError(t, repo.Add(ctx, accountID, token))
	require.NoError(t, repo.Add(ctx, accountID, token))

	tokens, err := repo.List(ctx, accountID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)

	ok, err := repo.Contains(ctx, accountID, token)
	require.NoError(t, err)
	assert.True(t, ok)

	// A distinct member is still a separate entry.
	other := models.AccountToken{Purpose: models.TokenPurposeAuth, Token: "token-def"}
	require.NoError(t, repo.Add(ctx, accountID, other))

	tokens, err = repo.List(ctx, accountID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}
