package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/usecase"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var v any
	gt.NoError(t, json.Unmarshal([]byte(raw), &v)).Required()
	return v
}

func TestNormalize_TaskFieldAliases(t *testing.T) {
	shapes := map[string]string{
		"due_date_iso": `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","due_date_iso":"2026-04-15"}]}}]}`,
		"due_date":     `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","due_date":"2026-04-15"}]}}]}`,
		"due":          `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","due":"2026-04-15"}]}}]}`,
		"dueAt":        `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","dueAt":"2026-04-15"}]}}]}`,
	}

	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			result := usecase.Normalize(decodeJSON(t, raw))
			gt.Array(t, result.Actions).Length(1)
			gt.Value(t, result.Actions[0].Kind).Equal(types.ActionCreateTasks)
			gt.Array(t, result.Actions[0].Tasks).Length(1)
			gt.Value(t, result.Actions[0].Tasks[0].DueDateISO).Equal("2026-04-15")
		})
	}
}

func TestNormalize_TaskSecondaryAliases(t *testing.T) {
	raw := `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{
		"title":"Prep deck",
		"notes":"for the board",
		"category":"Business",
		"assignee":"me",
		"estimated_minutes": 45,
		"project":"Q4 Launch",
		"priority":"HIGH",
		"kind":"day",
		"due":"2026-09-03T10:00:00Z"
	}]}}]}`

	result := usecase.Normalize(decodeJSON(t, raw))
	gt.Array(t, result.Actions).Length(1)
	task := result.Actions[0].Tasks[0]
	gt.Value(t, task.Description).Equal("for the board")
	gt.Value(t, task.Focus).Equal("Business")
	gt.Value(t, task.Owner).Equal("me")
	gt.Value(t, task.EstimatedMinutes).Equal(45)
	gt.Value(t, task.ProjectName).Equal("Q4 Launch")
	gt.Value(t, task.Priority).Equal(types.TaskPriorityHigh)
	gt.Value(t, task.TaskType).Equal(types.TaskTypeDay)
	gt.Value(t, task.DueDateISO).Equal("2026-09-03T10:00:00Z")
}

func TestNormalize_EventStartAliases(t *testing.T) {
	shapes := map[string]string{
		"startIso":   `{"startIso":"2026-09-01T12:00:00Z","endIso":"2026-09-01T13:00:00Z"}`,
		"start_iso":  `{"start_iso":"2026-09-01T12:00:00Z","end_iso":"2026-09-01T13:00:00Z"}`,
		"start":      `{"start":"2026-09-01T12:00:00Z","end":"2026-09-01T13:00:00Z"}`,
		"start_time": `{"start_time":"2026-09-01T12:00:00Z","end_time":"2026-09-01T13:00:00Z"}`,
		"startTime":  `{"startTime":"2026-09-01T12:00:00Z","endTime":"2026-09-01T13:00:00Z"}`,
		"nested":     `{"start":{"dateTime":"2026-09-01T12:00:00Z"},"end":{"dateTime":"2026-09-01T13:00:00Z"}}`,
	}

	for name, fields := range shapes {
		t.Run(name, func(t *testing.T) {
			raw := `{"actions":[{"action":"create_events","parameters":{"events":[` +
				`{"title":"Lunch with Jeremy",` + fields[1:] + `]}}]}`
			result := usecase.Normalize(decodeJSON(t, raw))
			gt.Array(t, result.Actions).Length(1)
			gt.Array(t, result.Actions[0].Events).Length(1)
			ev := result.Actions[0].Events[0]
			gt.Value(t, ev.StartISO).Equal("2026-09-01T12:00:00Z")
			gt.Value(t, ev.EndISO).Equal("2026-09-01T13:00:00Z")
		})
	}
}

func TestNormalize_EventSummaryAlias(t *testing.T) {
	raw := `{"actions":[{"type":"create_events","params":{"events":[
		{"summary":"Standup","start":"2026-09-01T09:00:00Z","end":"2026-09-01T09:15:00Z"}
	]}}]}`
	result := usecase.Normalize(decodeJSON(t, raw))
	gt.Array(t, result.Actions).Length(1)
	gt.Value(t, result.Actions[0].Events[0].Title).Equal("Standup")
}

func TestNormalize_LegacyShapes(t *testing.T) {
	t.Run("single action with parameters", func(t *testing.T) {
		raw := `{"action":"plan_day","parameters":{"date":"2026-09-01"}}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Value(t, result.Actions[0].Kind).Equal(types.ActionPlanDay)
		gt.Value(t, result.Actions[0].DateISO).Equal("2026-09-01")
	})

	t.Run("single action with params", func(t *testing.T) {
		raw := `{"action":"plan_week","params":{"start":"2026-09-01","end":"2026-09-07"}}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Value(t, result.Actions[0].StartDateISO).Equal("2026-09-01")
		gt.Value(t, result.Actions[0].EndDateISO).Equal("2026-09-07")
	})

	t.Run("top-level create_tasks shorthand", func(t *testing.T) {
		raw := `{"create_tasks":{"tasks":[{"title":"Water plants"}]}}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Value(t, result.Actions[0].Kind).Equal(types.ActionCreateTasks)
	})

	t.Run("top-level create_events shorthand", func(t *testing.T) {
		raw := `{"create_events":{"events":[{"title":"Gym","start":"2026-09-01T07:00:00Z","end":"2026-09-01T08:00:00Z"}]}}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Value(t, result.Actions[0].Kind).Equal(types.ActionCreateEvents)
	})

	t.Run("bare single task as parameters", func(t *testing.T) {
		raw := `{"action":"create_tasks","parameters":{"title":"Call the bank"}}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Array(t, result.Actions[0].Tasks).Length(1)
		gt.Value(t, result.Actions[0].Tasks[0].Title).Equal("Call the bank")
	})
}

func TestNormalize_Degradation(t *testing.T) {
	t.Run("non-object input yields Done", func(t *testing.T) {
		result := usecase.Normalize("not even close")
		gt.Array(t, result.Actions).Length(0)
		gt.Array(t, result.LogLines).Equal([]string{"Done."})
	})

	t.Run("nil input yields Done", func(t *testing.T) {
		result := usecase.Normalize(nil)
		gt.Array(t, result.LogLines).Equal([]string{"Done."})
	})

	t.Run("mixed-type logLines keep only strings", func(t *testing.T) {
		raw := `{"logLines":["ok", 42, null, {"x":1}, "fine"]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.LogLines).Equal([]string{"ok", "fine"})
	})

	t.Run("unknown action names are dropped", func(t *testing.T) {
		raw := `{"actions":[{"action":"order_pizza","parameters":{}}],"logLines":["sure"]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(0)
		gt.Array(t, result.LogLines).Equal([]string{"sure"})
	})

	t.Run("task without title is dropped", func(t *testing.T) {
		raw := `{"actions":[{"action":"create_tasks","parameters":{"tasks":[{"notes":"no title"}]}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(0)
	})

	t.Run("event missing start or end is dropped", func(t *testing.T) {
		raw := `{"actions":[
			{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","due_date_iso":"2026-04-15"}]}},
			{"action":"create_events","parameters":{"events":[{"title":"Bad Event"}]}}
		]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Value(t, result.Actions[0].Kind).Equal(types.ActionCreateTasks)
	})
}

func TestNormalize_DeleteActions(t *testing.T) {
	t.Run("delete all via query", func(t *testing.T) {
		raw := `{"actions":[{"action":"delete_tasks","parameters":{"query":"all"}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions).Length(1)
		gt.Bool(t, result.Actions[0].DeleteAll).True()
		gt.Value(t, result.Actions[0].Query).Equal("")
	})

	t.Run("delete by id list alias", func(t *testing.T) {
		raw := `{"actions":[{"action":"delete_tasks","parameters":{"ids":["a","b"]}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions[0].TaskIDs).Length(2)
	})

	t.Run("delete events by title alias", func(t *testing.T) {
		raw := `{"actions":[{"action":"delete_events","parameters":{"title":"dinner"}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Value(t, result.Actions[0].Query).Equal("dinner")
	})
}

func TestNormalize_MoveEvent(t *testing.T) {
	raw := `{"actions":[{"action":"move_event","parameters":{"name":"dinner","shift_minutes":60}}]}`
	result := usecase.Normalize(decodeJSON(t, raw))
	gt.Array(t, result.Actions).Length(1)
	action := result.Actions[0]
	gt.Value(t, action.Query).Equal("dinner")
	gt.Value(t, *action.ShiftMinutes).Equal(60)
	gt.Value(t, action.NewStartISO).Equal("")
}

func TestNormalize_InfoActions(t *testing.T) {
	t.Run("remember items", func(t *testing.T) {
		raw := `{"actions":[{"action":"remember_info","parameters":{"items":[{"label":"garage code","value":"4482"}]}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions[0].Items).Length(1)
		gt.Value(t, result.Actions[0].Items[0].Value).Equal("4482")
	})

	t.Run("remember single pair shorthand", func(t *testing.T) {
		raw := `{"actions":[{"action":"remember_info","parameters":{"label":"wifi","value":"hunter2"}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions[0].Items).Length(1)
	})

	t.Run("lookup single label shorthand", func(t *testing.T) {
		raw := `{"actions":[{"action":"lookup_info","parameters":{"label":"wifi"}}]}`
		result := usecase.Normalize(decodeJSON(t, raw))
		gt.Array(t, result.Actions[0].Labels).Equal([]string{"wifi"})
	})
}

func TestNormalize_UpdateTasks(t *testing.T) {
	raw := `{"actions":[{"action":"update_tasks","parameters":{
		"where":{"match_title":"board"},
		"patch":{"status":"done","priority":"low"}
	}}]}`
	result := usecase.Normalize(decodeJSON(t, raw))
	gt.Array(t, result.Actions).Length(1)
	action := result.Actions[0]
	gt.Value(t, action.Where.MatchTitle).Equal("board")
	gt.Value(t, *action.Patch.Status).Equal(types.TaskStatusDone)
	gt.Value(t, *action.Patch.Priority).Equal(types.TaskPriorityLow)
}

// Re-normalizing a canonical-shape reply yields the identical action list.
func TestNormalize_Idempotence(t *testing.T) {
	canonical := `{"actions":[
		{"action":"create_tasks","parameters":{"tasks":[{"title":"File taxes","due_date_iso":"2026-04-15","priority":"high"}]}},
		{"action":"move_event","parameters":{"query":"dinner","shift_minutes":30}},
		{"action":"delete_tasks","parameters":{"query":"laundry"}}
	],"logLines":["On it."]}`

	first := usecase.Normalize(decodeJSON(t, canonical))
	second := usecase.Normalize(decodeJSON(t, canonical))
	gt.Value(t, second.Actions).Equal(first.Actions)
	gt.Value(t, second.LogLines).Equal(first.LogLines)
}
