package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkowal/todoapi/internal/models"
	"github.com/mkowal/todoapi/internal/repositories"
)

var (
	ErrEmptyTodoText = fmt.Errorf("%w: text must not be empty", ErrValidation)
	ErrTodoNotFound  = errors.New("todo not found")
)

// TodoPatch carries the mutable fields of a todo. Nil means "leave as is".
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// TodoService applies the ownership rule to every operation: the creator id
// comes from the authenticated account, never from the request, and all
// lookups are filtered by it.
type TodoService struct {
	todoRepo repositories.TodoRepository
}

func NewTodoService(todoRepo repositories.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

func (s *TodoService) Create(ctx context.Context, creatorID uuid.UUID, text string, completed bool) (*models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyTodoText
	}

	todo := &models.Todo{
		CreatorID: creatorID,
		Text:      text,
		Completed: completed,
	}
	if completed {
		now := time.Now()
		todo.CompletedAt = &now
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, creatorID uuid.UUID) ([]*models.Todo, error) {
	todos, err := s.todoRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, creatorID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.todoRepo.GetByID(ctx, id, creatorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update applies a patch. Marking a todo completed stamps completed_at;
// marking it not completed clears the stamp.
func (s *TodoService) Update(ctx context.Context, creatorID, id uuid.UUID, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.Get(ctx, creatorID, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, ErrEmptyTodoText
		}
		todo.Text = text
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
		if todo.Completed {
			now := time.Now()
			todo.CompletedAt = &now
		} else {
			todo.CompletedAt = nil
		}
	}

	err = s.todoRepo.Update(ctx, todo)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, creatorID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.todoRepo.Delete(ctx, id, creatorID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}
	return todo, nil
}
