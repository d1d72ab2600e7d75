package interfaces

import (
	"context"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// TaskRepository defines the interface for task data access. Every
// operation is scoped to a single user; no call can observe or mutate rows
// of another user.
type TaskRepository interface {
	// Create inserts the given rows with generated IDs and returns them
	Create(ctx context.Context, userID types.UserID, tasks []*model.Task) ([]*model.Task, error)

	// Get retrieves a task by ID
	Get(ctx context.Context, userID types.UserID, id types.TaskID) (*model.Task, error)

	// List retrieves tasks matching the filter, ordered by creation time
	List(ctx context.Context, userID types.UserID, filter model.TaskFilter) ([]*model.Task, error)

	// Update applies the patch to all tasks matched by the selector and
	// returns the number of rows changed
	Update(ctx context.Context, userID types.UserID, where model.TaskSelector, patch model.TaskPatch) (int, error)

	// Delete removes the identified tasks and returns the number of rows
	// removed
	Delete(ctx context.Context, userID types.UserID, ids []types.TaskID) (int, error)

	// DeleteAll removes every task owned by the user and returns the count
	DeleteAll(ctx context.Context, userID types.UserID) (int, error)
}
