package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"github.com/vesper-lab/adjutant/pkg/usecase"
)

func TestFindEventByTitle(t *testing.T) {
	events := []*model.Event{
		{ID: "ev-1", Title: "Dinner with Jasper", Start: time.Now()},
		{ID: "ev-2", Title: "Lunch with Sam", Start: time.Now()},
	}

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		got := usecase.FindEventByTitle(events, "dinner")
		gt.Value(t, got).NotNil()
		gt.Value(t, got.ID).Equal(types.EventID("ev-1"))
	})

	t.Run("first match in provider order wins", func(t *testing.T) {
		got := usecase.FindEventByTitle(events, "with")
		gt.Value(t, got).NotNil()
		gt.Value(t, got.ID).Equal(types.EventID("ev-1"))
	})

	t.Run("no match returns nil", func(t *testing.T) {
		gt.Value(t, usecase.FindEventByTitle(events, "zzz")).Nil()
	})

	t.Run("empty query returns nil", func(t *testing.T) {
		gt.Value(t, usecase.FindEventByTitle(events, "")).Nil()
		gt.Value(t, usecase.FindEventByTitle(events, "   ")).Nil()
	})
}

func TestFindEventsByTitle(t *testing.T) {
	events := []*model.Event{
		{ID: "ev-1", Title: "Dinner with Jasper"},
		{ID: "ev-2", Title: "Lunch with Sam"},
		{ID: "ev-3", Title: "Team dinner"},
	}

	matches := usecase.FindEventsByTitle(events, "dinner")
	gt.Array(t, matches).Length(2)
	gt.Value(t, matches[0].ID).Equal(types.EventID("ev-1"))
	gt.Value(t, matches[1].ID).Equal(types.EventID("ev-3"))

	gt.Array(t, usecase.FindEventsByTitle(events, "")).Length(0)
}

func TestFindTaskByTitle(t *testing.T) {
	tasks := []*model.Task{
		{ID: "t-1", Title: "Write quarterly report"},
		{ID: "t-2", Title: "Report printer issue"},
	}

	got := usecase.FindTaskByTitle(tasks, "report")
	gt.Value(t, got).NotNil()
	gt.Value(t, got.ID).Equal(types.TaskID("t-1"))

	gt.Value(t, usecase.FindTaskByTitle(tasks, "zzz")).Nil()
}
