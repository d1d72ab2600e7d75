package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// taskDoc is the Firestore document representation of model.Task
type taskDoc struct {
	ID               string    `firestore:"ID"`
	UserID           string    `firestore:"UserID"`
	Title            string    `firestore:"Title"`
	Description      string    `firestore:"Description"`
	Focus            string    `firestore:"Focus"`
	Owner            string    `firestore:"Owner"`
	Priority         string    `firestore:"Priority"`
	EstimatedMinutes int       `firestore:"EstimatedMinutes"`
	DueDate          string    `firestore:"DueDate"`
	Area             string    `firestore:"Area"`
	ProjectID        string    `firestore:"ProjectID"`
	TaskType         string    `firestore:"TaskType"`
	Status           string    `firestore:"Status"`
	CreatedAt        time.Time `firestore:"CreatedAt"`
	UpdatedAt        time.Time `firestore:"UpdatedAt"`
}

func toTaskDoc(t *model.Task) *taskDoc {
	return &taskDoc{
		ID:               t.ID.String(),
		UserID:           t.UserID.String(),
		Title:            t.Title,
		Description:      t.Description,
		Focus:            t.Focus,
		Owner:            t.Owner,
		Priority:         t.Priority.String(),
		EstimatedMinutes: t.EstimatedMinutes,
		DueDate:          t.DueDate,
		Area:             t.Area,
		ProjectID:        t.ProjectID.String(),
		TaskType:         t.TaskType.String(),
		Status:           t.Status.String(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func fromTaskDoc(d *taskDoc) *model.Task {
	return &model.Task{
		ID:               types.TaskID(d.ID),
		UserID:           types.UserID(d.UserID),
		Title:            d.Title,
		Description:      d.Description,
		Focus:            d.Focus,
		Owner:            d.Owner,
		Priority:         types.TaskPriority(d.Priority),
		EstimatedMinutes: d.EstimatedMinutes,
		DueDate:          d.DueDate,
		Area:             d.Area,
		ProjectID:        types.ProjectID(d.ProjectID),
		TaskType:         types.TaskType(d.TaskType),
		Status:           types.TaskStatus(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type taskRepository struct {
	client *firestore.Client
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

// tasksCollection returns the subcollection path: users/{userID}/tasks
func (r *taskRepository) tasksCollection(userID types.UserID) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID.String()).Collection("tasks")
}

func (r *taskRepository) Create(ctx context.Context, userID types.UserID, tasks []*model.Task) ([]*model.Task, error) {
	now := time.Now().UTC()
	bw := r.client.BulkWriter(ctx)

	created := make([]*model.Task, 0, len(tasks))
	for _, t := range tasks {
		row := *t
		row.ID = types.NewTaskID()
		row.UserID = userID
		row.CreatedAt = now
		row.UpdatedAt = now

		docRef := r.tasksCollection(userID).Doc(row.ID.String())
		if _, err := bw.Set(docRef, toTaskDoc(&row)); err != nil {
			return nil, goerr.Wrap(err, "failed to queue task write", goerr.V("title", row.Title))
		}
		created = append(created, &row)
	}
	bw.End()

	return created, nil
}

func (r *taskRepository) Get(ctx context.Context, userID types.UserID, id types.TaskID) (*model.Task, error) {
	docSnap, err := r.tasksCollection(userID).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var d taskDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}

	return fromTaskDoc(&d), nil
}

func (r *taskRepository) List(ctx context.Context, userID types.UserID, filter model.TaskFilter) ([]*model.Task, error) {
	// Equality constraints are pushed to Firestore; day-range and
	// case-insensitive constraints are applied client-side to keep the
	// index surface small.
	q := r.tasksCollection(userID).Query
	if filter.Status != "" {
		q = q.Where("Status", "==", filter.Status.String())
	}
	if filter.TaskType != "" {
		q = q.Where("TaskType", "==", filter.TaskType.String())
	}
	q = q.OrderBy("CreatedAt", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	tasks := make([]*model.Task, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var d taskDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task", goerr.V("doc_id", docSnap.Ref.ID))
		}

		t := fromTaskDoc(&d)
		if filter.FromDate != "" && (t.DueDate == "" || t.DueDate < filter.FromDate) {
			continue
		}
		if filter.ToDate != "" && (t.DueDate == "" || t.DueDate > filter.ToDate) {
			continue
		}
		if filter.Focus != "" && !strings.EqualFold(t.Focus, filter.Focus) {
			continue
		}
		if filter.Area != "" && !strings.EqualFold(t.Area, filter.Area) {
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, userID types.UserID, where model.TaskSelector, patch model.TaskPatch) (int, error) {
	if where.IsZero() {
		return 0, goerr.New("task selector is empty")
	}

	targets, err := r.selectTasks(ctx, userID, where)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	bw := r.client.BulkWriter(ctx)
	for _, t := range targets {
		patch.Apply(t)
		t.UpdatedAt = now
		docRef := r.tasksCollection(userID).Doc(t.ID.String())
		if _, err := bw.Set(docRef, toTaskDoc(t)); err != nil {
			return 0, goerr.Wrap(err, "failed to queue task update", goerr.V("id", t.ID))
		}
	}
	bw.End()

	return len(targets), nil
}

// selectTasks resolves a selector to concrete rows. Substring title match
// cannot be expressed as a Firestore query, so selection always reads the
// candidate set and filters client-side.
func (r *taskRepository) selectTasks(ctx context.Context, userID types.UserID, where model.TaskSelector) ([]*model.Task, error) {
	if where.ID != "" {
		t, err := r.Get(ctx, userID, where.ID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []*model.Task{t}, nil
	}

	all, err := r.List(ctx, userID, model.TaskFilter{})
	if err != nil {
		return nil, err
	}

	targets := make([]*model.Task, 0)
	for _, t := range all {
		switch {
		case where.MatchTitle != "":
			if strings.Contains(strings.ToLower(t.Title), strings.ToLower(where.MatchTitle)) {
				targets = append(targets, t)
			}
		case where.Area != "":
			if strings.EqualFold(t.Area, where.Area) {
				targets = append(targets, t)
			}
		}
	}
	return targets, nil
}

func (r *taskRepository) Delete(ctx context.Context, userID types.UserID, ids []types.TaskID) (int, error) {
	count := 0
	for _, id := range ids {
		docRef := r.tasksCollection(userID).Doc(id.String())
		if _, err := docRef.Get(ctx); err != nil {
			if status.Code(err) == codes.NotFound {
				continue
			}
			return count, goerr.Wrap(err, "failed to check task existence", goerr.V("id", id))
		}
		if _, err := docRef.Delete(ctx); err != nil {
			return count, goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
		}
		count++
	}
	return count, nil
}

func (r *taskRepository) DeleteAll(ctx context.Context, userID types.UserID) (int, error) {
	iter := r.tasksCollection(userID).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	count := 0
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate tasks for delete")
		}
		if _, err := bw.Delete(docSnap.Ref); err != nil {
			return 0, goerr.Wrap(err, "failed to queue task delete", goerr.V("doc_id", docSnap.Ref.ID))
		}
		count++
	}
	bw.End()

	return count, nil
}
