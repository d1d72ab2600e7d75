package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Task represents a persisted task row owned by a single user. DueDate is
// day-precision ("YYYY-MM-DD"); an empty DueDate marks a backlog task.
type Task struct {
	ID               types.TaskID
	UserID           types.UserID
	Title            string
	Description      string
	Focus            string
	Owner            string
	Priority         types.TaskPriority
	EstimatedMinutes int
	DueDate          string
	Area             string
	ProjectID        types.ProjectID
	TaskType         types.TaskType
	Status           types.TaskStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TaskInput is the canonical, normalized form of an upstream task request.
// It is produced by the normalizer from loosely-typed planner output and
// consumed once by the dispatcher to create task rows.
type TaskInput struct {
	Title            string
	Description      string
	Priority         types.TaskPriority
	DueDateISO       string // truncated to day precision
	EstimatedMinutes int
	Focus            string
	Owner            string
	Area             string
	ProjectName      string
	TaskType         types.TaskType
}

// Validate checks the minimal required fields of a normalized task input
func (x *TaskInput) Validate() error {
	if x.Title == "" {
		return goerr.New("task title is required")
	}
	return nil
}

// Row converts the input into a Task row for the given user, applying the
// defaults the original capture flow used: medium priority, "General" focus,
// day_task type when a due date is present.
func (x *TaskInput) Row(userID types.UserID) *Task {
	priority := x.Priority
	if !priority.IsValid() {
		priority = types.TaskPriorityMedium
	}
	focus := x.Focus
	if focus == "" {
		focus = "General"
	}
	taskType := x.TaskType
	if !taskType.IsValid() {
		if x.DueDateISO != "" {
			taskType = types.TaskTypeDay
		} else {
			taskType = types.TaskTypeAnytime
		}
	}
	return &Task{
		UserID:           userID,
		Title:            x.Title,
		Description:      x.Description,
		Focus:            focus,
		Owner:            x.Owner,
		Priority:         priority,
		EstimatedMinutes: x.EstimatedMinutes,
		DueDate:          truncateToDay(x.DueDateISO),
		Area:             x.Area,
		TaskType:         taskType,
		Status:           types.TaskStatusTodo,
	}
}

// truncateToDay reduces an ISO timestamp to day precision
func truncateToDay(iso string) string {
	if len(iso) > 10 {
		return iso[:10]
	}
	return iso
}

// TaskPatch is a partial update applied to one or more tasks. Nil fields are
// left untouched.
type TaskPatch struct {
	Title            *string
	Description      *string
	Priority         *types.TaskPriority
	Status           *types.TaskStatus
	DueDateISO       *string
	Area             *string
	Focus            *string
	TaskType         *types.TaskType
	EstimatedMinutes *int
	ProjectID        *types.ProjectID
}

// IsEmpty reports whether the patch would change nothing
func (p *TaskPatch) IsEmpty() bool {
	return p == nil ||
		(p.Title == nil && p.Description == nil && p.Priority == nil &&
			p.Status == nil && p.DueDateISO == nil && p.Area == nil &&
			p.Focus == nil && p.TaskType == nil && p.EstimatedMinutes == nil &&
			p.ProjectID == nil)
}

// Apply writes the non-nil patch fields onto the task
func (p *TaskPatch) Apply(t *Task) {
	if p == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDateISO != nil {
		t.DueDate = truncateToDay(*p.DueDateISO)
	}
	if p.Area != nil {
		t.Area = *p.Area
	}
	if p.Focus != nil {
		t.Focus = *p.Focus
	}
	if p.TaskType != nil {
		t.TaskType = *p.TaskType
	}
	if p.EstimatedMinutes != nil {
		t.EstimatedMinutes = *p.EstimatedMinutes
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
}

// TaskSelector selects the tasks a bulk update or delete applies to. Exactly
// one of the fields is honored, in declaration order: ID, then MatchTitle
// (case-insensitive substring), then Area (exact, case-insensitive).
type TaskSelector struct {
	ID         types.TaskID
	MatchTitle string
	Area       string
}

// IsZero reports whether no selection criterion was supplied
func (s *TaskSelector) IsZero() bool {
	return s == nil || (s.ID == "" && s.MatchTitle == "" && s.Area == "")
}

// TaskFilter narrows task listing. Zero values mean "no constraint".
// FromDate/ToDate are inclusive day-precision bounds on DueDate.
type TaskFilter struct {
	FromDate string
	ToDate   string
	Status   types.TaskStatus
	Focus    string
	Area     string
	TaskType types.TaskType
}
