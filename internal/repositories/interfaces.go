package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkowal/todoapi/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// TokenRepository tracks the currently-valid tokens of each account. Adds and
// removes are targeted single-element operations so concurrent logins and
// logouts for one account never clobber each other.
type TokenRepository interface {
	Add(ctx context.Context, accountID uuid.UUID, token models.AccountToken) error
	Contains(ctx context.Context, accountID uuid.UUID, token models.AccountToken) (bool, error)
	Remove(ctx context.Context, accountID uuid.UUID, tokenString string) error
	List(ctx context.Context, accountID uuid.UUID) ([]models.AccountToken, error)
	RemoveAll(ctx context.Context, accountID uuid.UUID) error
}

// TodoRepository scopes every lookup, update, and delete by the creator.
// A todo owned by someone else is reported as ErrNotFound, same as a todo
// that does not exist.
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	GetByID(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error)
}
