package service

import (
	"context"
	"fmt"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
	"todo-server/internal/worker"
)

// TodoService coordinates todo operations backed by the repository.
// Ownership checks happen in the transport layer's guard; operations
// taking an existing todo trust that it was loaded through the guard.
type TodoService interface {
	List(ctx context.Context, ownerID int64) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID int64, text string) (*domain.Todo, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, existing domain.Todo, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, existing domain.Todo) (*domain.Todo, error)
}

type todoService struct {
	todos repository.TodoRepository
	pool  *worker.Pool
}

func NewTodoService(todos repository.TodoRepository, pool *worker.Pool) TodoService {
	return &todoService{
		todos: todos,
		pool:  pool,
	}
}

// List returns the owner's todos in store order.
func (s *todoService) List(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	var todos []domain.Todo
	err := s.pool.Do(ctx, func() error {
		var err error
		todos, err = s.todos.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *todoService) Create(ctx context.Context, ownerID int64, text string) (*domain.Todo, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}

	var id int64
	err := s.pool.Do(ctx, func() error {
		var err error
		id, err = s.todos.Create(ctx, ownerID, text)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &domain.Todo{ID: id, Text: text, Done: false, OwnerID: ownerID}, nil
}

func (s *todoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	var todo *domain.Todo
	err := s.pool.Do(ctx, func() error {
		var err error
		todo, err = s.todos.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// Update applies the patch to the stored row and returns the updated
// todo. Only the fields named by the patch kind change; id and owner
// are immutable.
func (s *todoService) Update(ctx context.Context, existing domain.Todo, patch domain.TodoPatch) (*domain.Todo, error) {
	updated := existing
	switch patch.Kind {
	case domain.PatchTextOnly:
		updated.Text = patch.Text
	case domain.PatchDoneOnly:
		updated.Done = patch.Done
	case domain.PatchBoth:
		updated.Text = patch.Text
		updated.Done = patch.Done
	default:
		return nil, domain.ErrEmptyPatch
	}

	err := s.pool.Do(ctx, func() error {
		return s.todos.Update(ctx, existing.ID, patch)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the row and returns the pre-deletion representation.
func (s *todoService) Delete(ctx context.Context, existing domain.Todo) (*domain.Todo, error) {
	err := s.pool.Do(ctx, func() error {
		return s.todos.Delete(ctx, existing.ID)
	})
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
