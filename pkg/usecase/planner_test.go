package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/repository/memory"
	"github.com/vesper-lab/adjutant/pkg/usecase"
)

const planDate = "2026-09-01"

func planTime(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func setupPlannerTest(t *testing.T) (*memory.Memory, *mockCalendar, *usecase.UseCases) {
	t.Helper()
	repo := memory.New()
	cal := &mockCalendar{}
	uc := usecase.New(repo,
		usecase.WithCalendar(cal),
		usecase.WithTimezone(time.UTC),
		usecase.WithNowFunc(func() time.Time { return planTime(t, 7, 0) }),
	)
	return repo, cal, uc
}

func TestBuildDayPlan(t *testing.T) {
	t.Run("priority order and no event overlap", func(t *testing.T) {
		repo, cal, uc := setupPlannerTest(t)
		ctx := context.Background()
		userID := types.UserID("planner-user")

		cal.events = []*model.Event{{
			ID:    "ev-1",
			Title: "Board meeting",
			Start: planTime(t, 10, 0),
			End:   planTime(t, 11, 0),
		}}

		_, err := repo.Task().Create(ctx, userID, []*model.Task{
			{Title: "Medium task", Priority: types.TaskPriorityMedium, EstimatedMinutes: 30, Status: types.TaskStatusTodo, TaskType: types.TaskTypeAnytime},
			{Title: "High task", Priority: types.TaskPriorityHigh, EstimatedMinutes: 30, Status: types.TaskStatusTodo, TaskType: types.TaskTypeAnytime},
		})
		gt.NoError(t, err).Required()

		plan, err := uc.BuildDayPlan(ctx, userID, planDate)
		gt.NoError(t, err).Required()
		gt.Array(t, plan.Unscheduled).Length(0)

		var taskBlocks []model.PlannedBlock
		var eventBlock *model.PlannedBlock
		for i, block := range plan.Blocks {
			switch block.Kind {
			case model.BlockKindTask:
				taskBlocks = append(taskBlocks, block)
			case model.BlockKindEvent:
				eventBlock = &plan.Blocks[i]
			}
		}

		gt.Value(t, eventBlock).NotNil()
		gt.Array(t, taskBlocks).Length(2).Required()
		gt.Value(t, taskBlocks[0].Label).Equal("High task")
		gt.Value(t, taskBlocks[1].Label).Equal("Medium task")
		gt.Value(t, taskBlocks[0].Start).Equal(planTime(t, 8, 0))
		gt.Value(t, taskBlocks[1].Start).Equal(planTime(t, 8, 30))

		for _, block := range taskBlocks {
			overlaps := block.Start.Before(eventBlock.End) && block.End.After(eventBlock.Start)
			gt.Bool(t, overlaps).False()
		}
	})

	t.Run("day-bound tasks go before backlog", func(t *testing.T) {
		repo, _, uc := setupPlannerTest(t)
		ctx := context.Background()
		userID := types.UserID("planner-user")

		_, err := repo.Task().Create(ctx, userID, []*model.Task{
			{Title: "Backlog high", Priority: types.TaskPriorityHigh, EstimatedMinutes: 30, Status: types.TaskStatusTodo, TaskType: types.TaskTypeAnytime},
			{Title: "Due today", Priority: types.TaskPriorityLow, EstimatedMinutes: 30, DueDate: planDate, Status: types.TaskStatusTodo, TaskType: types.TaskTypeDay},
		})
		gt.NoError(t, err).Required()

		plan, err := uc.BuildDayPlan(ctx, userID, planDate)
		gt.NoError(t, err).Required()
		gt.Array(t, plan.Blocks).Length(2).Required()
		gt.Value(t, plan.Blocks[0].Label).Equal("Due today")
		gt.Value(t, plan.Blocks[1].Label).Equal("Backlog high")
	})

	t.Run("task too large for a gap waits for the next one", func(t *testing.T) {
		repo, cal, uc := setupPlannerTest(t)
		ctx := context.Background()
		userID := types.UserID("planner-user")

		cal.events = []*model.Event{{
			ID:    "ev-1",
			Title: "Early sync",
			Start: planTime(t, 8, 30),
			End:   planTime(t, 9, 0),
		}}

		// 60 minutes cannot fit into the 08:00-08:30 gap.
		_, err := repo.Task().Create(ctx, userID, []*model.Task{
			{Title: "Long task", Priority: types.TaskPriorityHigh, EstimatedMinutes: 60, Status: types.TaskStatusTodo, TaskType: types.TaskTypeAnytime},
		})
		gt.NoError(t, err).Required()

		plan, err := uc.BuildDayPlan(ctx, userID, planDate)
		gt.NoError(t, err).Required()

		var taskBlock *model.PlannedBlock
		for i, block := range plan.Blocks {
			if block.Kind == model.BlockKindTask {
				taskBlock = &plan.Blocks[i]
			}
		}
		gt.Value(t, taskBlock).NotNil()
		gt.Value(t, taskBlock.Start).Equal(planTime(t, 9, 0))
	})

	t.Run("tasks that cannot fit are reported unscheduled", func(t *testing.T) {
		repo, _, uc := setupPlannerTest(t)
		ctx := context.Background()
		userID := types.UserID("planner-user")

		var tasks []*model.Task
		for i := 0; i < 6; i++ {
			tasks = append(tasks, &model.Task{
				Title:            "Deep work " + string(rune('A'+i)),
				Priority:         types.TaskPriorityMedium,
				EstimatedMinutes: 120,
				Status:           types.TaskStatusTodo,
				TaskType:         types.TaskTypeAnytime,
			})
		}
		_, err := repo.Task().Create(ctx, userID, tasks)
		gt.NoError(t, err).Required()

		plan, err := uc.BuildDayPlan(ctx, userID, planDate)
		gt.NoError(t, err).Required()

		// A 10-hour window fits five 2-hour blocks; the sixth is reported.
		gt.Array(t, plan.Blocks).Length(5)
		gt.Array(t, plan.Unscheduled).Length(1)
	})

	t.Run("unestimated tasks default to one hour", func(t *testing.T) {
		repo, _, uc := setupPlannerTest(t)
		ctx := context.Background()
		userID := types.UserID("planner-user")

		_, err := repo.Task().Create(ctx, userID, []*model.Task{
			{Title: "No estimate", Priority: types.TaskPriorityMedium, Status: types.TaskStatusTodo, TaskType: types.TaskTypeAnytime},
		})
		gt.NoError(t, err).Required()

		plan, err := uc.BuildDayPlan(ctx, userID, planDate)
		gt.NoError(t, err).Required()
		gt.Array(t, plan.Blocks).Length(1).Required()
		gt.Value(t, plan.Blocks[0].End.Sub(plan.Blocks[0].Start)).Equal(time.Hour)
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		_, _, uc := setupPlannerTest(t)
		_, err := uc.BuildDayPlan(context.Background(), "planner-user", "not-a-date")
		gt.Error(t, err)
	})
}
