package google

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Calendar implements the calendar provider boundary on top of the Google
// Calendar API. Events are stored on a single calendar, "primary" by
// default.
type Calendar struct {
	svc        *calendar.Service
	calendarID string
	timezone   *time.Location
}

// CalendarOption configures a Calendar client
type CalendarOption func(*Calendar)

// WithCalendarID targets a calendar other than "primary"
func WithCalendarID(id string) CalendarOption {
	return func(c *Calendar) {
		if id != "" {
			c.calendarID = id
		}
	}
}

// WithCalendarTimezone sets the timezone attached to created events
func WithCalendarTimezone(loc *time.Location) CalendarOption {
	return func(c *Calendar) {
		if loc != nil {
			c.timezone = loc
		}
	}
}

// NewCalendar creates a Calendar client. clientOpts are passed through to
// the Google API client; pass option.WithCredentialsFile or nothing for
// application default credentials.
func NewCalendar(ctx context.Context, opts []CalendarOption, clientOpts ...option.ClientOption) (*Calendar, error) {
	svc, err := calendar.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create calendar service")
	}

	c := &Calendar{
		svc:        svc,
		calendarID: "primary",
		timezone:   time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CreateEvent inserts a new event and returns it with the provider ID
func (c *Calendar) CreateEvent(ctx context.Context, input *model.EventInput) (*model.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ev := &calendar.Event{
		Summary:     input.Title,
		Location:    input.Location,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.StartISO,
			TimeZone: c.timezone.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: input.EndISO,
			TimeZone: c.timezone.String(),
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to insert event", goerr.V("title", input.Title))
	}

	return convertEvent(created)
}

// ListEvents retrieves events overlapping the [from, to) range, ordered by
// start time. Recurring events are expanded into single instances.
func (c *Calendar) ListEvents(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	call := c.svc.Events.List(c.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	var events []*model.Event
	pageToken := ""
	for {
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list events",
				goerr.V("from", from), goerr.V("to", to))
		}
		for _, item := range resp.Items {
			ev, err := convertEvent(item)
			if err != nil {
				// All-day events carry a date without a time; skip them,
				// the planner only anchors on timed events.
				continue
			}
			events = append(events, ev)
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return events, nil
}

// UpdateEventTime reschedules an event to the given start/end
func (c *Calendar) UpdateEventTime(ctx context.Context, id types.EventID, start, end time.Time) error {
	patch := &calendar.Event{
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.timezone.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.timezone.String(),
		},
	}
	if _, err := c.svc.Events.Patch(c.calendarID, string(id), patch).Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to reschedule event", goerr.V("id", id))
	}
	return nil
}

// DeleteEvent removes an event by ID
func (c *Calendar) DeleteEvent(ctx context.Context, id types.EventID) error {
	if err := c.svc.Events.Delete(c.calendarID, string(id)).Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to delete event", goerr.V("id", id))
	}
	return nil
}

func convertEvent(ev *calendar.Event) (*model.Event, error) {
	if ev.Start == nil || ev.Start.DateTime == "" {
		return nil, goerr.New("event has no timed start", goerr.V("id", ev.Id))
	}
	start, err := time.Parse(time.RFC3339, ev.Start.DateTime)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid event start", goerr.V("id", ev.Id))
	}

	var end time.Time
	if ev.End != nil && ev.End.DateTime != "" {
		end, err = time.Parse(time.RFC3339, ev.End.DateTime)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid event end", goerr.V("id", ev.Id))
		}
	}

	return &model.Event{
		ID:          types.EventID(ev.Id),
		Title:       ev.Summary,
		Start:       start,
		End:         end,
		Location:    ev.Location,
		Description: ev.Description,
	}, nil
}
