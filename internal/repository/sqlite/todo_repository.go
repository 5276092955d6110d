package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	done BOOLEAN NOT NULL DEFAULT 0,
	owner_id INTEGER NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users (id)
);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, ownerID int64, text string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (text, done, owner_id)
VALUES (?, 0, ?)`,
		text,
		ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert todo: %w: %v", domain.ErrStore, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w: %v", domain.ErrStore, err)
	}
	return id, nil
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, text, done, owner_id
FROM todos
WHERE id = ?`,
		id,
	)

	var todo domain.Todo
	if err := row.Scan(&todo.ID, &todo.Text, &todo.Done, &todo.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan todo: %w: %v", domain.ErrStore, err)
	}
	return &todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, text, done, owner_id
FROM todos
WHERE owner_id = ?`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w: %v", domain.ErrStore, err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		var todo domain.Todo
		if err := rows.Scan(&todo.ID, &todo.Text, &todo.Done, &todo.OwnerID); err != nil {
			return nil, fmt.Errorf("scan todo: %w: %v", domain.ErrStore, err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w: %v", domain.ErrStore, err)
	}
	return todos, nil
}

// Update writes exactly the fields named by the patch kind and leaves
// every other column untouched.
func (r *TodoRepository) Update(ctx context.Context, id int64, patch domain.TodoPatch) error {
	var (
		res sql.Result
		err error
	)
	switch patch.Kind {
	case domain.PatchTextOnly:
		res, err = r.db.ExecContext(ctx, `UPDATE todos SET text = ? WHERE id = ?`, patch.Text, id)
	case domain.PatchDoneOnly:
		res, err = r.db.ExecContext(ctx, `UPDATE todos SET done = ? WHERE id = ?`, patch.Done, id)
	case domain.PatchBoth:
		res, err = r.db.ExecContext(ctx, `UPDATE todos SET text = ?, done = ? WHERE id = ?`, patch.Text, patch.Done, id)
	default:
		return fmt.Errorf("unknown patch kind %d: %w", patch.Kind, domain.ErrStore)
	}
	if err != nil {
		return fmt.Errorf("update todo: %w: %v", domain.ErrStore, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo rows affected: %w: %v", domain.ErrStore, err)
	}
	if affected == 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w: %v", domain.ErrStore, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo rows affected: %w: %v", domain.ErrStore, err)
	}
	if affected == 0 {
		return fmt.Errorf("todo %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
