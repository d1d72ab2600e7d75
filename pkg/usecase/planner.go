package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	planGranularity     = 15 * time.Minute
	defaultTaskEstimate = 60 // minutes
)

// BuildDayPlan produces a schedule for one day: fixed calendar events are
// immovable anchors, and open todo tasks are greedily slotted into the gaps
// between them inside the working-day window. Tasks that do not fit are
// returned in Unscheduled. Blocks are not guaranteed sorted.
func (uc *UseCases) BuildDayPlan(ctx context.Context, userID types.UserID, dateISO string) (*model.DayPlan, error) {
	day, err := time.ParseInLocation("2006-01-02", dateISO, uc.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid plan date", goerr.V("date", dateISO))
	}

	var events []*model.Event
	var tasks []*model.Task

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if uc.calendar == nil {
			return nil
		}
		var err error
		events, err = uc.calendar.ListEvents(egCtx, day, day.AddDate(0, 0, 1))
		return err
	})
	eg.Go(func() error {
		var err error
		tasks, err = uc.repo.Task().List(egCtx, userID, model.TaskFilter{Status: types.TaskStatusTodo})
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load plan inputs", goerr.V("date", dateISO))
	}

	var dayTasks, backlog []*model.Task
	for _, t := range tasks {
		switch t.DueDate {
		case dateISO:
			dayTasks = append(dayTasks, t)
		case "":
			backlog = append(backlog, t)
		}
	}
	sort.SliceStable(backlog, func(i, j int) bool {
		return backlog[i].Priority.Weight() < backlog[j].Priority.Weight()
	})

	plan := &model.DayPlan{Date: dateISO}

	anchors := make([]model.PlannedBlock, 0, len(events))
	for _, ev := range events {
		anchors = append(anchors, model.PlannedBlock{
			Start: ev.Start,
			End:   ev.Start.Add(ev.Duration()),
			Label: ev.Title,
			Kind:  model.BlockKindEvent,
		})
	}
	sort.Slice(anchors, func(i, j int) bool {
		return anchors[i].Start.Before(anchors[j].Start)
	})
	plan.Blocks = append(plan.Blocks, anchors...)

	queue := append(append([]*model.Task{}, dayTasks...), backlog...)
	cursor := day.Add(time.Duration(uc.workdayStart) * time.Hour)
	workdayEnd := day.Add(time.Duration(uc.workdayEnd) * time.Hour)

	fill := func(gapEnd time.Time) {
		for len(queue) > 0 && cursor.Add(planGranularity).Before(gapEnd) {
			task := queue[0]
			est := task.EstimatedMinutes
			if est <= 0 {
				est = defaultTaskEstimate
			}
			taskEnd := cursor.Add(time.Duration(est) * time.Minute)
			if taskEnd.After(gapEnd) {
				return
			}
			plan.Blocks = append(plan.Blocks, model.PlannedBlock{
				Start: cursor,
				End:   taskEnd,
				Label: task.Title,
				Kind:  model.BlockKindTask,
			})
			cursor = taskEnd
			queue = queue[1:]
		}
	}

	for _, anchor := range anchors {
		fill(anchor.Start)
		if anchor.End.After(cursor) {
			cursor = anchor.End
		}
	}
	fill(workdayEnd)

	for _, task := range queue {
		plan.Unscheduled = append(plan.Unscheduled, task.Title)
	}

	return plan, nil
}
