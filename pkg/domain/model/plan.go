package model

import "time"

// BlockKind distinguishes fixed calendar events from flexibly-slotted tasks
// in a day plan.
type BlockKind string

const (
	BlockKindEvent BlockKind = "event"
	BlockKindTask  BlockKind = "task"
)

// PlannedBlock is one scheduled unit of time in a day plan. Ephemeral:
// plans are recomputed on demand and never persisted.
type PlannedBlock struct {
	Start time.Time
	End   time.Time
	Label string
	Kind  BlockKind
}

// DayPlan is the output of the day planner. Blocks are not guaranteed to be
// sorted; callers needing chronological order must re-sort by Start.
// Unscheduled lists the titles of tasks that did not fit inside the working
// day.
type DayPlan struct {
	Date        string
	Blocks      []PlannedBlock
	Unscheduled []string
}

// MailMessage is the subset of a provider email message the assistant needs
// for drafting replies.
type MailMessage struct {
	ID       string
	ThreadID string
	From     string
	To       string
	Subject  string
	Snippet  string
	BodyText string
}

// Sender is a (name, address) pair extracted from inbox headers by the
// contact sync worker.
type Sender struct {
	Name  string
	Email string
}
