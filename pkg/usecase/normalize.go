package usecase

import (
	"strings"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Field alias tables. Planner output is not schema-enforced and has used
// several naming conventions over time; every accepted alias of a canonical
// field is listed here so the coercion stays auditable.
var (
	dueDateAliases     = []string{"due_date_iso", "due_date", "due", "dueAt"}
	startAliases       = []string{"startIso", "start_iso", "start", "start_time", "startTime"}
	endAliases         = []string{"endIso", "end_iso", "end", "end_time", "endTime"}
	descriptionAliases = []string{"notes", "description"}
	focusAliases       = []string{"focus", "category"}
	ownerAliases       = []string{"owner", "assignee"}
	estimateAliases    = []string{"estimatedMinutes", "estimated_minutes"}
	projectAliases     = []string{"project_name", "project"}
	queryAliases       = []string{"query", "title", "name"}
	taskIDListAliases  = []string{"task_ids", "ids"}
	eventIDListAliases = []string{"event_ids", "ids"}
)

// Normalize converts an arbitrary parsed planner reply into a validated
// action list plus log lines. It never fails: malformed entries are dropped,
// unknown action names are skipped, and a fully empty result is replaced by
// a single "Done." line.
func Normalize(raw any) *model.CommandResult {
	result := &model.CommandResult{
		Actions:  []model.Action{},
		LogLines: []string{},
	}

	root := asMap(raw)

	// Keep only string log lines; the planner has returned mixed types.
	for _, line := range asSlice(root["logLines"]) {
		if s, ok := line.(string); ok {
			result.LogLines = append(result.LogLines, s)
		}
	}

	for _, item := range rawActionList(root) {
		entry := asMap(item)
		if entry == nil {
			continue
		}
		name := pickString(entry, "action", "type")
		params := asMap(entry["parameters"])
		if params == nil {
			params = asMap(entry["params"])
		}
		if params == nil {
			params = entry
		}
		if action, ok := translateAction(name, params); ok {
			result.Actions = append(result.Actions, action)
		}
	}

	if len(result.Actions) == 0 && len(result.LogLines) == 0 {
		result.LogLines = append(result.LogLines, "Done.")
	}

	return result
}

// rawActionList prefers an explicit actions array, then falls back to the
// legacy single-action and shorthand top-level shapes.
func rawActionList(root map[string]any) []any {
	if actions := asSlice(root["actions"]); len(actions) > 0 {
		return actions
	}
	if root["action"] != nil {
		params := root["parameters"]
		if params == nil {
			params = root["params"]
		}
		if params == nil {
			params = map[string]any{}
		}
		return []any{map[string]any{"action": root["action"], "parameters": params}}
	}
	if root["create_tasks"] != nil {
		return []any{map[string]any{"action": "create_tasks", "parameters": root["create_tasks"]}}
	}
	if root["create_events"] != nil {
		return []any{map[string]any{"action": "create_events", "parameters": root["create_events"]}}
	}
	return nil
}

func translateAction(name string, params map[string]any) (model.Action, bool) {
	switch name {
	case "create_task", "create_tasks":
		return translateCreateTasks(params)
	case "create_event", "create_events":
		return translateCreateEvents(params)
	case "update_task":
		return translateUpdateTask(params)
	case "update_tasks":
		return translateUpdateTasks(params)
	case "delete_task":
		return translateDeleteTask(params)
	case "delete_tasks":
		return translateDeleteTasks(params)
	case "list_tasks":
		return translateListTasks(params)
	case "delete_event":
		return model.Action{
			Kind:    types.ActionDeleteEvent,
			EventID: types.EventID(pickString(params, "eventId", "event_id", "id")),
		}, true
	case "delete_events":
		return model.Action{
			Kind:     types.ActionDeleteEvents,
			EventIDs: toEventIDs(pickStringList(params, eventIDListAliases...)),
			Query:    pickString(params, queryAliases...),
		}, true
	case "list_events":
		return model.Action{
			Kind: types.ActionListEvents,
			Day:  pickString(params, "day", "date"),
		}, true
	case "move_event":
		return model.Action{
			Kind:         types.ActionMoveEvent,
			Query:        pickString(params, queryAliases...),
			NewStartISO:  pickString(params, "new_start_iso", "start", "start_time"),
			ShiftMinutes: pickIntPtr(params, "shift_minutes"),
		}, true
	case "plan_day":
		return model.Action{
			Kind:    types.ActionPlanDay,
			DateISO: pickString(params, "date_iso", "date"),
		}, true
	case "plan_week":
		return model.Action{
			Kind:         types.ActionPlanWeek,
			StartDateISO: pickString(params, "start_date_iso", "start"),
			EndDateISO:   pickString(params, "end_date_iso", "end"),
		}, true
	case "create_project":
		return model.Action{
			Kind:        types.ActionCreateProject,
			ProjectName: pickString(params, "name", "title"),
			Area:        pickString(params, "area"),
		}, true
	case "assign_tasks_to_project":
		return model.Action{
			Kind:        types.ActionAssignTasksToProject,
			ProjectName: pickString(params, projectAliases...),
			TaskTitles:  pickStringList(params, "task_titles", "titles", "tasks"),
			Area:        pickString(params, "area"),
		}, true
	case "archive_project":
		return model.Action{
			Kind:        types.ActionArchiveProject,
			ProjectName: pickString(params, "name", "project"),
		}, true
	case "update_task_type":
		return model.Action{
			Kind:      types.ActionUpdateTaskType,
			TaskTitle: pickString(params, "task_title", "title"),
			TaskType:  parseTaskType(pickString(params, "task_type", "type")),
			DateISO:   pickString(params, "date_iso", "date"),
		}, true
	case "display":
		return translateDisplay(params)
	case "send_email":
		return translateEmail(types.ActionSendEmail, params)
	case "draft_reply":
		return translateEmail(types.ActionDraftReply, params)
	case "remember_info":
		return translateRememberInfo(params)
	case "lookup_info":
		return translateLookupInfo(params)
	case "check_availability":
		return model.Action{Kind: types.ActionCheckAvailability}, true
	default:
		// Unknown names are dropped here; the dispatcher only ever sees
		// recognized kinds.
		return model.Action{}, false
	}
}

func translateCreateTasks(params map[string]any) (model.Action, bool) {
	rawTasks := asSlice(params["tasks"])
	if rawTasks == nil && pickString(params, "title") != "" {
		rawTasks = []any{params}
	}

	tasks := make([]model.TaskInput, 0, len(rawTasks))
	for _, raw := range rawTasks {
		m := asMap(raw)
		if m == nil {
			continue
		}
		title := pickString(m, "title")
		if title == "" {
			continue
		}
		input := model.TaskInput{
			Title:            title,
			Description:      pickString(m, descriptionAliases...),
			Priority:         parsePriority(pickString(m, "priority")),
			DueDateISO:       pickString(m, dueDateAliases...),
			EstimatedMinutes: pickInt(m, estimateAliases...),
			Focus:            pickString(m, focusAliases...),
			Owner:            pickString(m, ownerAliases...),
			Area:             pickString(m, "area", "category"),
			ProjectName:      pickString(m, projectAliases...),
			TaskType:         parseTaskType(pickString(m, "task_type", "kind")),
		}
		tasks = append(tasks, input)
	}

	if len(tasks) == 0 {
		return model.Action{}, false
	}
	return model.Action{Kind: types.ActionCreateTasks, Tasks: tasks}, true
}

func translateCreateEvents(params map[string]any) (model.Action, bool) {
	rawEvents := asSlice(params["events"])
	if rawEvents == nil && pickString(params, "title", "summary") != "" {
		rawEvents = []any{params}
	}

	events := make([]model.EventInput, 0, len(rawEvents))
	for _, raw := range rawEvents {
		m := asMap(raw)
		if m == nil {
			continue
		}
		title := pickString(m, "title", "summary")
		if title == "" {
			continue
		}
		input := model.EventInput{
			Title:       title,
			StartISO:    pickTimestamp(m, startAliases...),
			EndISO:      pickTimestamp(m, endAliases...),
			Location:    pickString(m, "location"),
			Description: pickString(m, "description"),
			Assumptions: asStringMap(m["assumptions"]),
		}
		// A reply missing start or end is discarded.
		if input.StartISO == "" || input.EndISO == "" {
			continue
		}
		events = append(events, input)
	}

	if len(events) == 0 {
		return model.Action{}, false
	}
	return model.Action{Kind: types.ActionCreateEvents, Events: events}, true
}

func translateUpdateTask(params map[string]any) (model.Action, bool) {
	task := asMap(params["task"])
	if task == nil {
		task = params
	}
	return model.Action{
		Kind:      types.ActionUpdateTask,
		TaskID:    types.TaskID(pickString(task, "id", "task_id")),
		TaskPatch: translatePatch(asMap(task["fields"])),
	}, true
}

func translateUpdateTasks(params map[string]any) (model.Action, bool) {
	return model.Action{
		Kind:  types.ActionUpdateTasks,
		Where: translateSelector(asMap(params["where"])),
		Patch: translatePatch(asMap(params["patch"])),
	}, true
}

func translateDeleteTask(params map[string]any) (model.Action, bool) {
	return model.Action{
		Kind:   types.ActionDeleteTask,
		TaskID: types.TaskID(pickString(params, "taskId", "task_id", "id")),
		All:    asBool(params["all"]),
	}, true
}

func translateDeleteTasks(params map[string]any) (model.Action, bool) {
	action := model.Action{
		Kind:    types.ActionDeleteTasks,
		TaskIDs: toTaskIDs(pickStringList(params, taskIDListAliases...)),
		Where:   translateSelector(asMap(params["where"])),
		Query:   pickString(params, queryAliases...),
	}
	if strings.EqualFold(action.Query, "all") || asBool(params["all"]) {
		action.DeleteAll = true
		action.Query = ""
	}
	return action, true
}

func translateListTasks(params map[string]any) (model.Action, bool) {
	q := asMap(params["query"])
	if q == nil {
		q = params
	}
	return model.Action{
		Kind: types.ActionListTasks,
		TaskQuery: &model.TaskQuery{
			Day:      pickString(q, "day", "date"),
			Status:   types.TaskStatus(pickString(q, "status")),
			Focus:    pickString(q, focusAliases...),
			Area:     pickString(q, "area"),
			Priority: parsePriority(pickString(q, "priority")),
		},
	}, true
}

func translateDisplay(params map[string]any) (model.Action, bool) {
	action := model.Action{
		Kind:        types.ActionDisplay,
		DisplayMode: pickString(params, "mode", "view"),
	}
	if r := asMap(params["range"]); r != nil {
		action.DisplayRange = &model.DisplayRange{
			StartISO: pickString(r, startAliases...),
			EndISO:   pickString(r, endAliases...),
		}
	}
	return action, true
}

func translateEmail(kind types.ActionKind, params map[string]any) (model.Action, bool) {
	m := asMap(params["email"])
	if m == nil {
		m = params
	}
	return model.Action{
		Kind: kind,
		Email: &model.EmailInput{
			To:           pickString(m, "to", "recipient"),
			Subject:      pickString(m, "subject"),
			Body:         pickString(m, "body"),
			Instructions: pickString(m, "instructions"),
			ThreadID:     pickString(m, "thread_id", "threadId"),
			MessageID:    pickString(m, "message_id", "messageId"),
		},
	}, true
}

func translateRememberInfo(params map[string]any) (model.Action, bool) {
	rawItems := asSlice(params["items"])
	if rawItems == nil && pickString(params, "label") != "" {
		rawItems = []any{params}
	}
	items := make([]model.InfoInput, 0, len(rawItems))
	for _, raw := range rawItems {
		m := asMap(raw)
		if m == nil {
			continue
		}
		label := pickString(m, "label", "key")
		if label == "" {
			continue
		}
		items = append(items, model.InfoInput{
			Label: label,
			Value: pickString(m, "value"),
		})
	}
	if len(items) == 0 {
		return model.Action{}, false
	}
	return model.Action{Kind: types.ActionRememberInfo, Items: items}, true
}

func translateLookupInfo(params map[string]any) (model.Action, bool) {
	labels := pickStringList(params, "labels")
	if len(labels) == 0 {
		if label := pickString(params, "label", "key"); label != "" {
			labels = []string{label}
		}
	}
	if len(labels) == 0 {
		return model.Action{}, false
	}
	return model.Action{Kind: types.ActionLookupInfo, Labels: labels}, true
}

func translateSelector(m map[string]any) *model.TaskSelector {
	if m == nil {
		return nil
	}
	return &model.TaskSelector{
		ID:         types.TaskID(pickString(m, "id", "task_id")),
		MatchTitle: pickString(m, "match_title", "title"),
		Area:       pickString(m, "area"),
	}
}

func translatePatch(m map[string]any) *model.TaskPatch {
	if m == nil {
		return nil
	}
	patch := &model.TaskPatch{}
	if s, ok := stringAt(m, "title"); ok {
		patch.Title = &s
	}
	if s, ok := stringAtAny(m, descriptionAliases); ok {
		patch.Description = &s
	}
	if s, ok := stringAt(m, "priority"); ok {
		if p := parsePriority(s); p.IsValid() {
			patch.Priority = &p
		}
	}
	if s, ok := stringAt(m, "status"); ok {
		status := types.TaskStatus(strings.ToLower(s))
		if status.IsValid() {
			patch.Status = &status
		}
	}
	if s, ok := stringAtAny(m, dueDateAliases); ok {
		patch.DueDateISO = &s
	}
	if s, ok := stringAt(m, "area"); ok {
		patch.Area = &s
	}
	if s, ok := stringAtAny(m, focusAliases); ok {
		patch.Focus = &s
	}
	if s, ok := stringAt(m, "task_type"); ok {
		if tt := parseTaskType(s); tt.IsValid() {
			patch.TaskType = &tt
		}
	}
	if n := pickIntPtr(m, estimateAliases...); n != nil {
		patch.EstimatedMinutes = n
	}
	if patch.IsEmpty() {
		return nil
	}
	return patch
}

func parsePriority(s string) types.TaskPriority {
	p := types.TaskPriority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return ""
}

func parseTaskType(s string) types.TaskType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "day_task":
		return types.TaskTypeDay
	case "anytime", "backlog":
		return types.TaskTypeAnytime
	default:
		return ""
	}
}

func toTaskIDs(ids []string) []types.TaskID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]types.TaskID, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.TaskID(id))
	}
	return out
}

func toEventIDs(ids []string) []types.EventID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]types.EventID, 0, len(ids))
	for _, id := range ids {
		out = append(out, types.EventID(id))
	}
	return out
}

// --- loose-typed JSON accessors ---

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asStringMap(v any) map[string]string {
	m := asMap(v)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s, ok := val.(string); ok {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringAt(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok && s != ""
}

func stringAtAny(m map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := stringAt(m, key); ok {
			return s, true
		}
	}
	return "", false
}

// pickString returns the first non-empty string value among the keys
func pickString(m map[string]any, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, key := range keys {
		if s, ok := stringAt(m, key); ok {
			return s
		}
	}
	return ""
}

// pickTimestamp is pickString plus the nested {"dateTime": ...} shape the
// planner occasionally copies from calendar API payloads
func pickTimestamp(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if s, ok := stringAt(v, "dateTime"); ok {
				return s
			}
		}
	}
	return ""
}

// pickInt returns the first numeric value among the keys, or 0. JSON numbers
// decode as float64.
func pickInt(m map[string]any, keys ...string) int {
	if n := pickIntPtr(m, keys...); n != nil {
		return *n
	}
	return 0
}

func pickIntPtr(m map[string]any, keys ...string) *int {
	if m == nil {
		return nil
	}
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			n := int(v)
			return &n
		case int:
			n := v
			return &n
		}
	}
	return nil
}

func pickStringList(m map[string]any, keys ...string) []string {
	if m == nil {
		return nil
	}
	for _, key := range keys {
		raw := asSlice(m[key])
		if raw == nil {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
