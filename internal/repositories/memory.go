package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkowal/todoapi/internal/models"
)

// In-memory repository implementations. They back tests and local runs
// without Postgres/Redis and honor the same contracts as the real ones,
// including safe concurrent access.

type InMemoryAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{accounts: make(map[uuid.UUID]*models.Account)}
}

func (r *InMemoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return ErrDuplicateEmail
		}
	}
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *InMemoryAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()
	return nil
}

type InMemoryTokenRepository struct {
	mu     sync.Mutex
	tokens map[uuid.UUID][]models.AccountToken
}

func NewInMemoryTokenRepository() *InMemoryTokenRepository {
	return &InMemoryTokenRepository{tokens: make(map[uuid.UUID][]models.AccountToken)}
}

// Add stores the token once. Adding an already-present member is a no-op,
// matching the set semantics of the Redis implementation.
func (r *InMemoryTokenRepository) Add(ctx context.Context, accountID uuid.UUID, token models.AccountToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.tokens[accountID] {
		if entry == token {
			return nil
		}
	}
	r.tokens[accountID] = append(r.tokens[accountID], token)
	return nil
}

func (r *InMemoryTokenRepository) Contains(ctx context.Context, accountID uuid.UUID, token models.AccountToken) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.tokens[accountID] {
		if entry == token {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryTokenRepository) Remove(ctx context.Context, accountID uuid.UUID, tokenString string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.AccountToken
	for _, entry := range r.tokens[accountID] {
		if entry.Token != tokenString {
			kept = append(kept, entry)
		}
	}
	r.tokens[accountID] = kept
	return nil
}

func (r *InMemoryTokenRepository) List(ctx context.Context, accountID uuid.UUID) ([]models.AccountToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.AccountToken(nil), r.tokens[accountID]...), nil
}

func (r *InMemoryTokenRepository) RemoveAll(ctx context.Context, accountID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, accountID)
	return nil
}

type InMemoryTodoRepository struct {
	mu    sync.Mutex
	todos map[uuid.UUID]*models.Todo
}

func NewInMemoryTodoRepository() *InMemoryTodoRepository {
	return &InMemoryTodoRepository{todos: make(map[uuid.UUID]*models.Todo)}
}

func (r *InMemoryTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo.ID = uuid.New()
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt
	clone := *todo
	r.todos[todo.ID] = &clone
	return nil
}

func (r *InMemoryTodoRepository) GetByID(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok || todo.CreatorID != creatorID {
		return nil, ErrNotFound
	}
	clone := *todo
	return &clone, nil
}

func (r *InMemoryTodoRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var todos []*models.Todo
	for _, todo := range r.todos {
		if todo.CreatorID == creatorID {
			clone := *todo
			todos = append(todos, &clone)
		}
	}
	return todos, nil
}

func (r *InMemoryTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.todos[todo.ID]
	if !ok || existing.CreatorID != todo.CreatorID {
		return ErrNotFound
	}
	todo.UpdatedAt = time.Now()
	clone := *todo
	r.todos[todo.ID] = &clone
	return nil
}

func (r *InMemoryTodoRepository) Delete(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	todo, ok := r.todos[id]
	if !ok || todo.CreatorID != creatorID {
		return nil, ErrNotFound
	}
	delete(r.todos, id)
	return todo, nil
}
