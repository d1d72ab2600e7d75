package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[types.UserID]map[types.TaskID]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[types.UserID]map[types.TaskID]*model.Task),
	}
}

func (r *taskRepository) ensureUser(userID types.UserID) {
	if _, exists := r.tasks[userID]; !exists {
		r.tasks[userID] = make(map[types.TaskID]*model.Task)
	}
}

// copyTask creates a deep copy of a task
func copyTask(t *model.Task) *model.Task {
	copied := *t
	return &copied
}

func (r *taskRepository) Create(ctx context.Context, userID types.UserID, tasks []*model.Task) ([]*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureUser(userID)

	now := time.Now().UTC()
	created := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		row := copyTask(t)
		row.ID = types.NewTaskID()
		row.UserID = userID
		row.CreatedAt = now
		row.UpdatedAt = now
		r.tasks[userID][row.ID] = row
		created = append(created, copyTask(row))
	}

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, userID types.UserID, id types.TaskID) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, exists := r.tasks[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	t, exists := rows[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}
	return copyTask(t), nil
}

func matchesFilter(t *model.Task, filter model.TaskFilter) bool {
	if filter.FromDate != "" && (t.DueDate == "" || t.DueDate < filter.FromDate) {
		return false
	}
	if filter.ToDate != "" && (t.DueDate == "" || t.DueDate > filter.ToDate) {
		return false
	}
	if filter.Status != "" && t.Status != filter.Status {
		return false
	}
	if filter.Focus != "" && !strings.EqualFold(t.Focus, filter.Focus) {
		return false
	}
	if filter.Area != "" && !strings.EqualFold(t.Area, filter.Area) {
		return false
	}
	if filter.TaskType != "" && t.TaskType != filter.TaskType {
		return false
	}
	return true
}

func (r *taskRepository) List(ctx context.Context, userID types.UserID, filter model.TaskFilter) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, exists := r.tasks[userID]
	if !exists {
		return []*model.Task{}, nil
	}

	tasks := make([]*model.Task, 0, len(rows))
	for _, t := range rows {
		if matchesFilter(t, filter) {
			tasks = append(tasks, copyTask(t))
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func matchesSelector(t *model.Task, where model.TaskSelector) bool {
	switch {
	case where.ID != "":
		return t.ID == where.ID
	case where.MatchTitle != "":
		return strings.Contains(strings.ToLower(t.Title), strings.ToLower(where.MatchTitle))
	case where.Area != "":
		return strings.EqualFold(t.Area, where.Area)
	default:
		return false
	}
}

func (r *taskRepository) Update(ctx context.Context, userID types.UserID, where model.TaskSelector, patch model.TaskPatch) (int, error) {
	if where.IsZero() {
		return 0, goerr.New("task selector is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rows, exists := r.tasks[userID]
	if !exists {
		return 0, nil
	}

	now := time.Now().UTC()
	count := 0
	for _, t := range rows {
		if !matchesSelector(t, where) {
			continue
		}
		patch.Apply(t)
		t.UpdatedAt = now
		count++
	}

	return count, nil
}

func (r *taskRepository) Delete(ctx context.Context, userID types.UserID, ids []types.TaskID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, exists := r.tasks[userID]
	if !exists {
		return 0, nil
	}

	count := 0
	for _, id := range ids {
		if _, exists := rows[id]; exists {
			delete(rows, id)
			count++
		}
	}

	return count, nil
}

func (r *taskRepository) DeleteAll(ctx context.Context, userID types.UserID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, exists := r.tasks[userID]
	if !exists {
		return 0, nil
	}

	count := len(rows)
	delete(r.tasks, userID)
	return count, nil
}
