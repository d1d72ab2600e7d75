package model

import (
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Action is one structured operation produced by interpreting a user
// command. Kind selects the operation; only the fields meaningful to that
// kind are populated. The normalizer guarantees that every Action it emits
// carries the fields its kind requires.
type Action struct {
	Kind types.ActionKind

	// create_tasks
	Tasks []TaskInput

	// update_task / delete_task
	TaskID    types.TaskID
	TaskPatch *TaskPatch
	All       bool

	// update_tasks / delete_tasks
	Where     *TaskSelector
	Patch     *TaskPatch
	TaskIDs   []types.TaskID
	DeleteAll bool

	// list_tasks
	TaskQuery *TaskQuery

	// create_events / delete_event(s) / list_events
	Events   []EventInput
	EventID  types.EventID
	EventIDs []types.EventID
	Day      string

	// move_event / fuzzy delete_events: free-text description of the target
	Query        string
	NewStartISO  string
	ShiftMinutes *int

	// plan_day / plan_week / update_task_type
	DateISO      string
	StartDateISO string
	EndDateISO   string

	// project operations
	ProjectName string
	Area        string
	TaskTitles  []string

	// update_task_type
	TaskTitle string
	TaskType  types.TaskType

	// display
	DisplayMode  string
	DisplayRange *DisplayRange

	// send_email / draft_reply
	Email *EmailInput

	// remember_info / lookup_info
	Items  []InfoInput
	Labels []string
}

// TaskQuery narrows a list_tasks action. Day accepts "today", "tomorrow" or
// an ISO date.
type TaskQuery struct {
	Day      string
	Status   types.TaskStatus
	Focus    string
	Area     string
	Priority types.TaskPriority
}

// DisplayRange bounds a display action
type DisplayRange struct {
	StartISO string
	EndISO   string
}

// EmailInput carries the fields of a send_email or draft_reply action
type EmailInput struct {
	To           string
	Subject      string
	Body         string
	Instructions string
	ThreadID     string
	MessageID    string
}

// InfoInput is one label/value pair of a remember_info action
type InfoInput struct {
	Label string
	Value string
}

// DispatchContext is the ambient identity of a dispatch run, threaded
// explicitly through every action execution. Actions that require a user
// identity short-circuit with an error log line when UserID is empty.
type DispatchContext struct {
	UserID    types.UserID
	UserEmail string
	Timezone  string
}

// CommandResult is what one interpreted command produces: the validated
// action list and the ordered, human-readable log of its execution.
type CommandResult struct {
	Actions  []Action
	LogLines []string
}
