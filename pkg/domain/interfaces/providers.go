package interfaces

import (
	"context"
	"time"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// CalendarService is the calendar provider boundary. Events are keyed by
// provider-assigned opaque IDs and ISO-8601 timestamps; this system owns no
// calendar state of its own.
type CalendarService interface {
	// CreateEvent inserts a new event and returns it with the provider ID
	CreateEvent(ctx context.Context, input *model.EventInput) (*model.Event, error)

	// ListEvents retrieves events overlapping the [from, to) range, ordered
	// by start time
	ListEvents(ctx context.Context, from, to time.Time) ([]*model.Event, error)

	// UpdateEventTime reschedules an event to the given start/end
	UpdateEventTime(ctx context.Context, id types.EventID, start, end time.Time) error

	// DeleteEvent removes an event by ID
	DeleteEvent(ctx context.Context, id types.EventID) error
}

// MailService is the email provider boundary
type MailService interface {
	// Send sends a message and returns the provider message ID
	Send(ctx context.Context, to, subject, body string) (string, error)

	// GetMessage retrieves a message by ID
	GetMessage(ctx context.Context, id string) (*model.MailMessage, error)

	// Reply sends a reply on the given thread, carrying the references the
	// provider needs for correct threading
	Reply(ctx context.Context, threadID, messageID, body string) (string, error)

	// ListRecentSenders extracts (name, address) pairs from the most recent
	// inbox messages, newest first, up to max entries
	ListRecentSenders(ctx context.Context, max int) ([]*model.Sender, error)
}
