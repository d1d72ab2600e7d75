package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// mockCalendar is an in-memory CalendarService. Individual operations can be
// made to fail by setting the matching error field.
type mockCalendar struct {
	events    []*model.Event
	nextID    int
	createErr error
	listErr   error
	updateErr error
	deleteErr error
}

func (c *mockCalendar) CreateEvent(ctx context.Context, input *model.EventInput) (*model.Event, error) {
	if c.createErr != nil {
		return nil, c.createErr
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, input.StartISO)
	if err != nil {
		return nil, goerr.Wrap(err, "bad start")
	}
	end, err := time.Parse(time.RFC3339, input.EndISO)
	if err != nil {
		return nil, goerr.Wrap(err, "bad end")
	}
	c.nextID++
	ev := &model.Event{
		ID:          types.EventID(fmt.Sprintf("ev-%d", c.nextID)),
		Title:       input.Title,
		Start:       start,
		End:         end,
		Location:    input.Location,
		Description: input.Description,
	}
	c.events = append(c.events, ev)
	return ev, nil
}

func (c *mockCalendar) ListEvents(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	var out []*model.Event
	for _, ev := range c.events {
		if ev.Start.Before(to) && ev.Start.Add(ev.Duration()).After(from) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (c *mockCalendar) UpdateEventTime(ctx context.Context, id types.EventID, start, end time.Time) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	for _, ev := range c.events {
		if ev.ID == id {
			ev.Start = start
			ev.End = end
			return nil
		}
	}
	return goerr.New("event not found", goerr.V("id", id))
}

func (c *mockCalendar) DeleteEvent(ctx context.Context, id types.EventID) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	for i, ev := range c.events {
		if ev.ID == id {
			c.events = append(c.events[:i], c.events[i+1:]...)
			return nil
		}
	}
	return goerr.New("event not found", goerr.V("id", id))
}

func (c *mockCalendar) find(id types.EventID) *model.Event {
	for _, ev := range c.events {
		if ev.ID == id {
			return ev
		}
	}
	return nil
}

// mockMail records sent messages and replies
type mockMail struct {
	sent     []string
	replies  []string
	messages map[string]*model.MailMessage
	sendErr  error
}

func (m *mockMail) Send(ctx context.Context, to, subject, body string) (string, error) {
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.sent = append(m.sent, fmt.Sprintf("%s|%s|%s", to, subject, body))
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

func (m *mockMail) GetMessage(ctx context.Context, id string) (*model.MailMessage, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, goerr.New("message not found", goerr.V("id", id))
	}
	return msg, nil
}

func (m *mockMail) Reply(ctx context.Context, threadID, messageID, body string) (string, error) {
	m.replies = append(m.replies, fmt.Sprintf("%s|%s", threadID, body))
	return fmt.Sprintf("reply-%d", len(m.replies)), nil
}

func (m *mockMail) ListRecentSenders(ctx context.Context, max int) ([]*model.Sender, error) {
	return nil, nil
}

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"{}"}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// replyLLMClient returns a client whose every session replies with the given
// text
func replyLLMClient(text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}
