package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// UseCases wires the command pipeline: interpret, normalize, dispatch.
// Calendar and mail are optional; actions needing an absent provider are
// reported as log lines, not errors.
type UseCases struct {
	repo      interfaces.Repository
	calendar  interfaces.CalendarService
	mail      interfaces.MailService
	llmClient gollem.LLMClient

	fallbackUserID types.UserID
	timezone       *time.Location
	workdayStart   int
	workdayEnd     int
	nowFunc        func() time.Time
}

type Option func(*UseCases)

func WithCalendar(calendar interfaces.CalendarService) Option {
	return func(uc *UseCases) {
		uc.calendar = calendar
	}
}

func WithMail(mail interfaces.MailService) Option {
	return func(uc *UseCases) {
		uc.mail = mail
	}
}

func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

// WithFallbackUser sets the user attributed when a request carries no
// identity of its own
func WithFallbackUser(userID types.UserID) Option {
	return func(uc *UseCases) {
		uc.fallbackUserID = userID
	}
}

func WithTimezone(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.timezone = loc
	}
}

// WithWorkday overrides the planning window hours (default 08:00-18:00)
func WithWorkday(startHour, endHour int) Option {
	return func(uc *UseCases) {
		uc.workdayStart = startHour
		uc.workdayEnd = endHour
	}
}

// WithNowFunc overrides the clock, for tests
func WithNowFunc(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.nowFunc = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		timezone:     time.UTC,
		workdayStart: 8,
		workdayEnd:   18,
		nowFunc:      time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

func (uc *UseCases) now() time.Time {
	return uc.nowFunc().In(uc.timezone)
}
