package usecase

import (
	"strings"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
)

// findEventByTitle resolves a free-text description against live calendar
// events by case-insensitive substring containment. First match in provider
// order wins; no ranking is attempted beyond containment. Returns nil when
// the query is empty or nothing matches.
func findEventByTitle(events []*model.Event, query string) *model.Event {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), needle) {
			return ev
		}
	}
	return nil
}

// findEventsByTitle returns every event whose title contains the query,
// preserving provider order. Used by fuzzy bulk deletion.
func findEventsByTitle(events []*model.Event, query string) []*model.Event {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	var matches []*model.Event
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), needle) {
			matches = append(matches, ev)
		}
	}
	return matches
}

// findTaskByTitle resolves a free-text description against tasks the same
// way: case-insensitive substring, first match wins
func findTaskByTitle(tasks []*model.Task, query string) *model.Task {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return t
		}
	}
	return nil
}
