package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/utils/logging"
)

// Calendar resolution windows for fuzzy queries. Bounded so the match pool
// stays small and relevant.
const (
	moveLookback    = 24 * time.Hour
	queryLookahead  = 30 * 24 * time.Hour
	listTaskDisplay = 5
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ExecuteActions runs the action batch strictly in order and returns the
// accumulated log. One failing action never prevents execution of the
// actions after it; the caller always receives a complete log.
func (uc *UseCases) ExecuteActions(ctx context.Context, actions []model.Action, dctx model.DispatchContext) []string {
	logs := make([]string, 0, len(actions))

	userID := dctx.UserID
	if userID == "" {
		userID = uc.fallbackUserID
	}

	for _, action := range actions {
		logs = append(logs, uc.executeAction(ctx, action, userID, dctx)...)
	}

	return logs
}

func (uc *UseCases) executeAction(ctx context.Context, action model.Action, userID types.UserID, dctx model.DispatchContext) (lines []string) {
	logger := logging.From(ctx)
	logger.Debug("executing action", "kind", action.Kind)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("action handler panicked", "kind", action.Kind, "panic", r)
			lines = append(lines, fmt.Sprintf("[assistant] [error] Action %s failed: %v", action.Kind, r))
		}
	}()

	var err error
	switch action.Kind {
	case types.ActionCreateTasks:
		lines, err = uc.handleCreateTasks(ctx, action, userID)
	case types.ActionUpdateTask:
		lines, err = uc.handleUpdateTask(ctx, action, userID)
	case types.ActionUpdateTasks:
		lines, err = uc.handleUpdateTasks(ctx, action, userID)
	case types.ActionDeleteTask:
		lines, err = uc.handleDeleteTask(ctx, action, userID)
	case types.ActionDeleteTasks:
		lines, err = uc.handleDeleteTasks(ctx, action, userID)
	case types.ActionListTasks:
		lines, err = uc.handleListTasks(ctx, action, userID)
	case types.ActionCreateEvents:
		lines, err = uc.handleCreateEvents(ctx, action)
	case types.ActionDeleteEvent:
		lines, err = uc.handleDeleteEvent(ctx, action)
	case types.ActionDeleteEvents:
		lines, err = uc.handleDeleteEvents(ctx, action)
	case types.ActionListEvents:
		lines, err = uc.handleListEvents(ctx, action)
	case types.ActionMoveEvent:
		lines, err = uc.handleMoveEvent(ctx, action)
	case types.ActionPlanDay:
		lines, err = uc.handlePlanDay(ctx, action, userID)
	case types.ActionPlanWeek:
		lines, err = uc.handlePlanWeek(action)
	case types.ActionCreateProject:
		lines, err = uc.handleCreateProject(ctx, action, userID)
	case types.ActionAssignTasksToProject:
		lines, err = uc.handleAssignTasksToProject(ctx, action, userID)
	case types.ActionArchiveProject:
		lines, err = uc.handleArchiveProject(ctx, action, userID)
	case types.ActionUpdateTaskType:
		lines, err = uc.handleUpdateTaskType(ctx, action, userID)
	case types.ActionDisplay:
		lines, err = uc.handleDisplay(action)
	case types.ActionSendEmail:
		lines, err = uc.handleSendEmail(ctx, action, userID, dctx)
	case types.ActionDraftReply:
		lines, err = uc.handleDraftReply(ctx, action)
	case types.ActionRememberInfo:
		lines, err = uc.handleRememberInfo(ctx, action, userID)
	case types.ActionLookupInfo:
		lines, err = uc.handleLookupInfo(ctx, action, userID)
	case types.ActionCheckAvailability:
		lines = []string{`I can't yet automatically check your availability. Try: "What's on my calendar tomorrow?"`}
	default:
		lines = []string{fmt.Sprintf("[assistant] Unsupported action: %s", action.Kind)}
	}

	if err != nil {
		logger.Warn("action failed", "kind", action.Kind, "error", err.Error())
		lines = append(lines, fmt.Sprintf("[assistant] [error] Action %s failed: %s", action.Kind, err.Error()))
	}

	return lines
}

func (uc *UseCases) handleCreateTasks(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] [error] Missing user for task creation."}, nil
	}

	rows := make([]*model.Task, 0, len(action.Tasks))
	for i := range action.Tasks {
		input := &action.Tasks[i]
		if err := input.Validate(); err != nil {
			continue
		}
		row := input.Row(userID)
		if input.ProjectName != "" {
			project, err := uc.createOrGetProject(ctx, userID, input.ProjectName, input.Area)
			if err != nil {
				return nil, err
			}
			row.ProjectID = project.ID
		}
		rows = append(rows, row)
	}

	created, err := uc.repo.Task().Create(ctx, userID, rows)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("[assistant] Added %d task(s).", len(created))}, nil
}

func (uc *UseCases) handleUpdateTask(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if action.TaskID == "" {
		return []string{"[warn] Missing task id for update_task action."}, nil
	}
	if action.TaskPatch.IsEmpty() {
		return []string{"[assistant] Unsupported action: update_task (empty patch)"}, nil
	}
	count, err := uc.repo.Task().Update(ctx, userID, model.TaskSelector{ID: action.TaskID}, *action.TaskPatch)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("✅ Updated %d task(s).", count)}, nil
}

func (uc *UseCases) handleUpdateTasks(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] [error] Missing user for update_tasks."}, nil
	}
	if action.Patch.IsEmpty() {
		return []string{"[assistant] Unsupported action: update_tasks (empty patch)"}, nil
	}
	if action.Where.IsZero() {
		return []string{"[assistant] Unsupported action: update_tasks (no where)"}, nil
	}
	count, err := uc.repo.Task().Update(ctx, userID, *action.Where, *action.Patch)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("[assistant] Updated %d task(s) matching your request.", count)}, nil
}

func (uc *UseCases) handleDeleteTask(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	switch {
	case action.All:
		if userID == "" {
			return []string{"[assistant] [error] Missing user for delete_task."}, nil
		}
		count, err := uc.repo.Task().DeleteAll(ctx, userID)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("[assistant] Deleted all tasks for this user. (%d)", count)}, nil
	case action.TaskID != "":
		count, err := uc.repo.Task().Delete(ctx, userID, []types.TaskID{action.TaskID})
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("[assistant] Deleted %d task(s).", count)}, nil
	default:
		return []string{"[warn] delete_task action missing taskId or all flag."}, nil
	}
}

func (uc *UseCases) handleDeleteTasks(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] [error] Missing user for delete_tasks."}, nil
	}

	// Delete-all bypasses query resolution entirely, scoped to this user.
	if action.DeleteAll {
		count, err := uc.repo.Task().DeleteAll(ctx, userID)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("[assistant] Deleted all tasks for this user. (%d)", count)}, nil
	}

	if len(action.TaskIDs) > 0 {
		count, err := uc.repo.Task().Delete(ctx, userID, action.TaskIDs)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("[assistant] Deleted %d task(s).", count)}, nil
	}

	where := action.Where
	if where.IsZero() && action.Query != "" {
		where = &model.TaskSelector{MatchTitle: action.Query}
	}
	if where.IsZero() {
		return []string{"[assistant] Unsupported action: delete_tasks (no where clause)"}, nil
	}

	tasks, err := uc.repo.Task().List(ctx, userID, model.TaskFilter{})
	if err != nil {
		return nil, err
	}
	var ids []types.TaskID
	for _, t := range tasks {
		if matchesTaskSelector(t, where) {
			ids = append(ids, t.ID)
		}
	}
	count := 0
	if len(ids) > 0 {
		count, err = uc.repo.Task().Delete(ctx, userID, ids)
		if err != nil {
			return nil, err
		}
	}
	return []string{fmt.Sprintf("[assistant] Deleted %d task(s).", count)}, nil
}

func matchesTaskSelector(t *model.Task, where *model.TaskSelector) bool {
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

func (uc *UseCases) handleListTasks(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Missing user for list_tasks."}, nil
	}

	filter := model.TaskFilter{}
	if q := action.TaskQuery; q != nil {
		filter.Status = q.Status
		filter.Focus = q.Focus
		filter.Area = q.Area
		if day, ok := uc.resolveDay(q.Day); ok {
			date := day.Format("2006-01-02")
			filter.FromDate = date
			filter.ToDate = date
		}
	}

	tasks, err := uc.repo.Task().List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return []string{"[assistant] No tasks found for that filter."}, nil
	}

	lines := []string{"[assistant] Here are your tasks:"}
	for i, t := range tasks {
		if i >= listTaskDisplay {
			break
		}
		line := "• " + t.Title
		if t.Focus != "" {
			line += fmt.Sprintf(" [%s]", t.Focus)
		}
		if t.DueDate != "" {
			line += fmt.Sprintf(" (due %s)", t.DueDate)
		}
		lines = append(lines, line)
	}
	if len(tasks) > listTaskDisplay {
		lines = append(lines, fmt.Sprintf("[assistant] ...and %d more.", len(tasks)-listTaskDisplay))
	}
	return lines, nil
}

func (uc *UseCases) handleCreateEvents(ctx context.Context, action model.Action) ([]string, error) {
	if uc.calendar == nil {
		return nil, goerr.New("calendar is not configured")
	}
	count := 0
	for i := range action.Events {
		if _, err := uc.calendar.CreateEvent(ctx, &action.Events[i]); err != nil {
			return nil, goerr.Wrap(err, "failed to create event", goerr.V("title", action.Events[i].Title))
		}
		count++
	}
	return []string{fmt.Sprintf("🗓 Created %d event(s).", count)}, nil
}

func (uc *UseCases) handleDeleteEvent(ctx context.Context, action model.Action) ([]string, error) {
	if uc.calendar == nil {
		return nil, goerr.New("calendar is not configured")
	}
	if err := uc.calendar.DeleteEvent(ctx, action.EventID); err != nil {
		return nil, err
	}
	return []string{"🗑️ Deleted 1 event(s)."}, nil
}

func (uc *UseCases) handleDeleteEvents(ctx context.Context, action model.Action) ([]string, error) {
	if uc.calendar == nil {
		return nil, goerr.New("calendar is not configured")
	}

	targets := action.EventIDs
	if len(targets) == 0 && action.Query != "" {
		now := uc.now()
		events, err := uc.calendar.ListEvents(ctx, now, now.Add(queryLookahead))
		if err != nil {
			return nil, err
		}
		for _, match := range findEventsByTitle(events, action.Query) {
			targets = append(targets, match.ID)
		}
	}

	deleted := 0
	for _, id := range targets {
		if err := uc.calendar.DeleteEvent(ctx, id); err != nil {
			return nil, err
		}
		deleted++
	}

	switch deleted {
	case 0:
		return []string{"I didn't find any calendar events to delete."}, nil
	case 1:
		return []string{"Deleted 1 calendar event."}, nil
	default:
		return []string{fmt.Sprintf("Deleted %d calendar events.", deleted)}, nil
	}
}

func (uc *UseCases) handleListEvents(ctx context.Context, action model.Action) ([]string, error) {
	if uc.calendar == nil {
		return nil, goerr.New("calendar is not configured")
	}

	day, ok := uc.resolveDay(action.Day)
	if !ok {
		day = uc.today()
	}
	events, err := uc.calendar.ListEvents(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []string{"[assistant] No calendar events found for that time range."}, nil
	}

	lines := []string{fmt.Sprintf("[assistant] Listing all calendar events for %s.", day.Format("2006-01-02"))}
	for _, ev := range events {
		start := ev.Start.In(uc.timezone).Format("3:04 PM")
		end := ev.Start.Add(ev.Duration()).In(uc.timezone).Format("3:04 PM")
		lines = append(lines, fmt.Sprintf("[assistant] - %s (%s–%s)", ev.Title, start, end))
	}
	return lines, nil
}

func (uc *UseCases) handleMoveEvent(ctx context.Context, action model.Action) ([]string, error) {
	if action.Query == "" {
		return []string{"I need a description of which event to move."}, nil
	}
	if uc.calendar == nil {
		return nil, goerr.New("calendar is not configured")
	}

	now := uc.now()
	events, err := uc.calendar.ListEvents(ctx, now.Add(-moveLookback), now.Add(queryLookahead))
	if err != nil {
		return nil, err
	}
	target := findEventByTitle(events, action.Query)
	if target == nil || target.ID == "" {
		return []string{"I couldn't find an event that matches that description."}, nil
	}

	oldStart := target.Start
	duration := target.Duration()
	newStart := oldStart
	switch {
	case action.NewStartISO != "":
		newStart, err = time.Parse(time.RFC3339, action.NewStartISO)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid new start time", goerr.V("start", action.NewStartISO))
		}
	case action.ShiftMinutes != nil:
		newStart = oldStart.Add(time.Duration(*action.ShiftMinutes) * time.Minute)
	}
	// Duration is preserved exactly in both modes.
	newEnd := newStart.Add(duration)

	if err := uc.calendar.UpdateEventTime(ctx, target.ID, newStart, newEnd); err != nil {
		return nil, err
	}

	return []string{fmt.Sprintf("Moved %q from %s to %s.",
		target.Title,
		oldStart.In(uc.timezone).Format("3:04 PM"),
		newStart.In(uc.timezone).Format("3:04 PM"),
	)}, nil
}

func (uc *UseCases) handlePlanDay(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] [error] Missing user for plan_day."}, nil
	}

	dateISO := action.DateISO
	if dateISO == "" {
		dateISO = uc.today().Format("2006-01-02")
	}

	plan, err := uc.BuildDayPlan(ctx, userID, dateISO)
	if err != nil {
		return nil, err
	}

	blocks := append([]model.PlannedBlock{}, plan.Blocks...)
	sortBlocks(blocks)

	lines := []string{fmt.Sprintf("[assistant] Here is a draft plan for %s:", dateISO)}
	for _, block := range blocks {
		start := block.Start.In(uc.timezone).Format("3:04 PM")
		end := block.End.In(uc.timezone).Format("3:04 PM")
		switch block.Kind {
		case model.BlockKindEvent:
			lines = append(lines, fmt.Sprintf("[assistant] 📅 %s–%s: %s", start, end, block.Label))
		case model.BlockKindTask:
			lines = append(lines, fmt.Sprintf("[assistant] ✅ %s–%s: %s", start, end, block.Label))
		}
	}
	if len(plan.Unscheduled) > 0 {
		lines = append(lines, fmt.Sprintf("[assistant] Unscheduled: %s", strings.Join(plan.Unscheduled, ", ")))
	}
	return lines, nil
}

func (uc *UseCases) handlePlanWeek(action model.Action) ([]string, error) {
	start := uc.today()
	if day, ok := uc.parseISODate(action.StartDateISO); ok {
		start = day
	}
	end := start.AddDate(0, 0, 6)
	if day, ok := uc.parseISODate(action.EndDateISO); ok {
		end = day
	}
	return []string{fmt.Sprintf(
		`I can plan each day between %s and %s. For now, run "plan my day" on the specific days you care about.`,
		start.Format("Jan 2"), end.Format("Jan 2"),
	)}, nil
}

func (uc *UseCases) createOrGetProject(ctx context.Context, userID types.UserID, name, area string) (*model.Project, error) {
	project, err := uc.repo.Project().GetByName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if project != nil {
		return project, nil
	}
	return uc.repo.Project().Create(ctx, userID, &model.Project{Name: name, Area: area})
}

func (uc *UseCases) handleCreateProject(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Missing user for project creation."}, nil
	}
	project, err := uc.createOrGetProject(ctx, userID, action.ProjectName, action.Area)
	if err != nil {
		return nil, err
	}
	area := project.Area
	if area == "" {
		area = "general"
	}
	return []string{fmt.Sprintf("[assistant] Created project '%s' in area '%s'.", project.Name, area)}, nil
}

func (uc *UseCases) handleAssignTasksToProject(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Missing user for assigning tasks."}, nil
	}

	project, err := uc.createOrGetProject(ctx, userID, action.ProjectName, action.Area)
	if err != nil {
		return nil, err
	}

	moved := 0
	patch := model.TaskPatch{ProjectID: &project.ID}
	if len(action.TaskTitles) > 0 {
		for _, title := range action.TaskTitles {
			count, err := uc.repo.Task().Update(ctx, userID, model.TaskSelector{MatchTitle: title}, patch)
			if err != nil {
				return nil, err
			}
			moved += count
		}
	} else if action.Area != "" {
		count, err := uc.repo.Task().Update(ctx, userID, model.TaskSelector{Area: action.Area}, patch)
		if err != nil {
			return nil, err
		}
		moved = count
	}

	return []string{fmt.Sprintf("[assistant] Assigned %d task(s) to project '%s'.", moved, project.Name)}, nil
}

func (uc *UseCases) handleArchiveProject(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Missing user for project archive."}, nil
	}
	project, err := uc.repo.Project().GetByName(ctx, userID, action.ProjectName)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return []string{"[assistant] Project not found to archive."}, nil
	}
	if err := uc.repo.Project().Archive(ctx, userID, project.ID); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("[assistant] Archived project '%s'.", project.Name)}, nil
}

func (uc *UseCases) handleUpdateTaskType(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Missing user for task update."}, nil
	}
	if action.TaskTitle == "" || !action.TaskType.IsValid() {
		return []string{"[warn] update_task_type action missing title or type."}, nil
	}

	taskType := action.TaskType
	patch := model.TaskPatch{TaskType: &taskType}
	if taskType == types.TaskTypeDay && action.DateISO != "" {
		due := action.DateISO
		patch.DueDateISO = &due
	}
	if taskType == types.TaskTypeAnytime {
		empty := ""
		patch.DueDateISO = &empty
	}

	count, err := uc.repo.Task().Update(ctx, userID, model.TaskSelector{MatchTitle: action.TaskTitle}, patch)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []string{"[assistant] No matching task found to update type."}, nil
	}

	line := fmt.Sprintf("[assistant] Updated task '%s' to %s", action.TaskTitle, taskType)
	if action.DateISO != "" {
		line += fmt.Sprintf(" for %s", action.DateISO)
	}
	return []string{line + "."}, nil
}

func (uc *UseCases) handleDisplay(action model.Action) ([]string, error) {
	line := fmt.Sprintf("📋 Display: %s", action.DisplayMode)
	if r := action.DisplayRange; r != nil {
		start := r.StartISO
		if start == "" {
			start = "..."
		}
		end := r.EndISO
		if end == "" {
			end = "..."
		}
		line += fmt.Sprintf(" (%s → %s)", start, end)
	}
	return []string{line}, nil
}

func (uc *UseCases) handleSendEmail(ctx context.Context, action model.Action, userID types.UserID, dctx model.DispatchContext) ([]string, error) {
	if uc.mail == nil {
		return nil, goerr.New("mail is not configured")
	}
	email := action.Email
	if email == nil || email.To == "" || email.Subject == "" || email.Body == "" {
		return nil, goerr.New("missing email fields")
	}

	to := email.To
	if !strings.Contains(to, "@") && userID != "" {
		contact, err := uc.repo.Contact().FindByName(ctx, userID, to)
		if err != nil {
			return nil, err
		}
		if contact == nil || contact.Email == "" {
			return []string{fmt.Sprintf("I don't have an email address saved for %q.", to)}, nil
		}
		to = contact.Email
	}

	id, err := uc.mail.Send(ctx, to, email.Subject, email.Body)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("📧 Email sent (%s).", id)}, nil
}

func (uc *UseCases) handleRememberInfo(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Skipped remembering info (no user)."}, nil
	}
	var lines []string
	for _, item := range action.Items {
		saved, err := uc.repo.Info().Upsert(ctx, userID, item.Label, item.Value)
		if err != nil {
			return lines, err
		}
		lines = append(lines, fmt.Sprintf("[assistant] Remembered %q as %q.", saved.Label, saved.Value))
	}
	return lines, nil
}

func (uc *UseCases) handleLookupInfo(ctx context.Context, action model.Action, userID types.UserID) ([]string, error) {
	if userID == "" {
		return []string{"[assistant] Cannot look up info without a user."}, nil
	}
	var lines []string
	for _, label := range action.Labels {
		fact, err := uc.repo.Info().Lookup(ctx, userID, label)
		if err != nil {
			return lines, err
		}
		if fact != nil {
			lines = append(lines, fmt.Sprintf("%q is %q.", label, fact.Value))
		} else {
			lines = append(lines, fmt.Sprintf("I don't have %q saved yet.", label))
		}
	}
	return lines, nil
}

// resolveDay interprets "today", "tomorrow" or an ISO date in the configured
// timezone
func (uc *UseCases) resolveDay(day string) (time.Time, bool) {
	switch {
	case day == "today":
		return uc.today(), true
	case day == "tomorrow":
		return uc.today().AddDate(0, 0, 1), true
	case isoDatePattern.MatchString(day):
		return uc.parseISODate(day)
	default:
		return time.Time{}, false
	}
}

func (uc *UseCases) parseISODate(day string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", day, uc.timezone)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (uc *UseCases) today() time.Time {
	now := uc.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.timezone)
}

func sortBlocks(blocks []model.PlannedBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})
}
