package repository

import (
	"context"

	"todo-server/internal/domain"
)

// TodoRepository defines persistence operations for Todo records.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, ownerID int64, text string) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Update(ctx context.Context, id int64, patch domain.TodoPatch) error
	Delete(ctx context.Context, id int64) error
}
