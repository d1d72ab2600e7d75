package types

// ActionKind identifies one structured operation produced by interpreting a
// user command. The set of kinds is closed: the normalizer only ever emits
// kinds listed here, and the dispatcher answers kinds it has no handler for
// with a guidance message instead of failing.
type ActionKind string

const (
	ActionCreateTasks          ActionKind = "create_tasks"
	ActionUpdateTask           ActionKind = "update_task"
	ActionUpdateTasks          ActionKind = "update_tasks"
	ActionDeleteTask           ActionKind = "delete_task"
	ActionDeleteTasks          ActionKind = "delete_tasks"
	ActionListTasks            ActionKind = "list_tasks"
	ActionCreateEvents         ActionKind = "create_events"
	ActionDeleteEvent          ActionKind = "delete_event"
	ActionDeleteEvents         ActionKind = "delete_events"
	ActionListEvents           ActionKind = "list_events"
	ActionMoveEvent            ActionKind = "move_event"
	ActionPlanDay              ActionKind = "plan_day"
	ActionPlanWeek             ActionKind = "plan_week"
	ActionCreateProject        ActionKind = "create_project"
	ActionAssignTasksToProject ActionKind = "assign_tasks_to_project"
	ActionArchiveProject       ActionKind = "archive_project"
	ActionUpdateTaskType       ActionKind = "update_task_type"
	ActionDisplay              ActionKind = "display"
	ActionSendEmail            ActionKind = "send_email"
	ActionDraftReply           ActionKind = "draft_reply"
	ActionRememberInfo         ActionKind = "remember_info"
	ActionLookupInfo           ActionKind = "lookup_info"
	ActionCheckAvailability    ActionKind = "check_availability"
)

// AllActionKinds returns all action kinds the normalizer may emit
func AllActionKinds() []ActionKind {
	return []ActionKind{
		ActionCreateTasks,
		ActionUpdateTask,
		ActionUpdateTasks,
		ActionDeleteTask,
		ActionDeleteTasks,
		ActionListTasks,
		ActionCreateEvents,
		ActionDeleteEvent,
		ActionDeleteEvents,
		ActionListEvents,
		ActionMoveEvent,
		ActionPlanDay,
		ActionPlanWeek,
		ActionCreateProject,
		ActionAssignTasksToProject,
		ActionArchiveProject,
		ActionUpdateTaskType,
		ActionDisplay,
		ActionSendEmail,
		ActionDraftReply,
		ActionRememberInfo,
		ActionLookupInfo,
		ActionCheckAvailability,
	}
}

// IsValid checks if the action kind is one of the closed set
func (k ActionKind) IsValid() bool {
	for _, kind := range AllActionKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// String returns the string representation of the action kind
func (k ActionKind) String() string {
	return string(k)
}
