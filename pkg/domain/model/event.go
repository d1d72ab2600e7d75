package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Event is a calendar event as reported by the calendar provider. The ID is
// assigned by the provider and opaque to this system.
type Event struct {
	ID          types.EventID
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
}

// Duration returns the event length. Events reported without a distinct end
// time are treated as one hour long, matching the calendar panel behavior.
func (e *Event) Duration() time.Duration {
	if e.End.After(e.Start) {
		return e.End.Sub(e.Start)
	}
	return time.Hour
}

// EventInput is a normalized request to create a calendar event. It is
// transient: produced by the normalizer, consumed immediately by event
// creation, never persisted on its own.
type EventInput struct {
	Title       string
	StartISO    string
	EndISO      string
	Location    string
	Description string
	// Assumptions carries free-form notes about inferred details, e.g.
	// "defaulted evening 7pm". Informational only.
	Assumptions map[string]string
}

// Validate checks the minimal required fields of an event input. A reply
// missing start or end is discarded by the normalizer before it gets here,
// but event creation validates again for direct callers.
func (x *EventInput) Validate() error {
	if x.Title == "" {
		return goerr.New("event title is required")
	}
	if x.StartISO == "" || x.EndISO == "" {
		return goerr.New("event start and end are required", goerr.V("title", x.Title))
	}
	return nil
}
