package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkowal/todoapi/internal/models"
)

// PostgresTodoRepository filters every query by creator_id. A todo that
// belongs to another account looks exactly like one that does not exist.
type PostgresTodoRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTodoRepository(pool *pgxpool.Pool) *PostgresTodoRepository {
	return &PostgresTodoRepository{pool: pool}
}

func (r *PostgresTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	query := `INSERT INTO todos (creator_id, text, completed, completed_at)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, todo.CreatorID, todo.Text, todo.Completed, todo.CompletedAt).
		Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error) {
	query := `SELECT id, creator_id, text, completed, completed_at, created_at, updated_at
	          FROM todos
	          WHERE id = $1 AND creator_id = $2`

	var todo models.Todo
	err := r.pool.QueryRow(ctx, query, id, creatorID).Scan(
		&todo.ID,
		&todo.CreatorID,
		&todo.Text,
		&todo.Completed,
		&todo.CompletedAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return &todo, nil
}

func (r *PostgresTodoRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*models.Todo, error) {
	query := `SELECT id, creator_id, text, completed, completed_at, created_at, updated_at
	          FROM todos
	          WHERE creator_id = $1
	          ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var todo models.Todo
		err := rows.Scan(
			&todo.ID,
			&todo.CreatorID,
			&todo.Text,
			&todo.Completed,
			&todo.CompletedAt,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, &todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo *models.Todo) error {
	query := `UPDATE todos
	          SET text = $1, completed = $2, completed_at = $3, updated_at = NOW()
	          WHERE id = $4 AND creator_id = $5
	          RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.ID,
		todo.CreatorID,
	).Scan(&todo.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete removes the todo and returns it, matching the API contract of
// responding with the removed document.
func (r *PostgresTodoRepository) Delete(ctx context.Context, id, creatorID uuid.UUID) (*models.Todo, error) {
	query := `DELETE FROM todos
	          WHERE id = $1 AND creator_id = $2
	          RETURNING id, creator_id, text, completed, completed_at, created_at, updated_at`

	var todo models.Todo
	err := r.pool.QueryRow(ctx, query, id, creatorID).Scan(
		&todo.ID,
		&todo.CreatorID,
		&todo.Text,
		&todo.Completed,
		&todo.CompletedAt,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete todo: %w", err)
	}
	return &todo, nil
}
